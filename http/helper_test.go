package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	treetranslation "github.com/snabble/go-treetranslation"
)

type flash struct {
	Category string
	Message  string
}

// recordingFlashes remembers every added flash.
type recordingFlashes struct {
	added []flash
	err   error
}

func (f *recordingFlashes) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	if f.err != nil {
		return f.err
	}
	f.added = append(f.added, flash{Category: category, Message: message})
	return nil
}

type fixedPrevious string

func (p fixedPrevious) Previous(r *http.Request) string {
	return string(p)
}

// brokenStore fails every lookup.
type brokenStore struct{}

func (brokenStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	return treetranslation.TreeTranslation{}, false, errors.New("database is locked")
}

func (brokenStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	return nil
}

// untouchedStore fails the test on any access.
type untouchedStore struct {
	t *testing.T
}

func (s untouchedStore) FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error) {
	s.t.Errorf("unexpected lookup of id %d", id)
	return treetranslation.TreeTranslation{}, false, nil
}

func (s untouchedStore) Delete(ctx context.Context, t treetranslation.TreeTranslation) error {
	s.t.Errorf("unexpected delete of id %d", t.ID)
	return nil
}

var (
	allPermited    = func(r Request) bool { return true }
	nobodyPermited = func(r Request) bool { return false }

	previousPage = fixedPrevious("/pages/edit?id=3")
)

func getRequest(h http.Handler, url string) *httptest.ResponseRecorder {
	return executeRequest(h, url, http.MethodGet, "")
}

func postRequest(h http.Handler, url string, form url.Values) *httptest.ResponseRecorder {
	return executeRequest(h, url, http.MethodPost, form.Encode())
}

func executeRequest(h http.Handler, url, method string, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}
