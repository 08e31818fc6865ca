package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	treetranslation "github.com/snabble/go-treetranslation"
	"github.com/snabble/go-treetranslation/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T, options ...treetranslation.StoreOption) *memory.MemoryStore {
	store := memory.New(options...)
	for _, tt := range []treetranslation.TreeTranslation{
		{ID: 3, TreeID: 1, Language: "de", Name: "Impressum"},
		{ID: 7, TreeID: 2, Language: "en", Name: "About"},
	} {
		_, err := store.Save(context.Background(), tt)
		require.NoError(t, err)
	}
	return store
}

func referenced(ids ...int64) treetranslation.StoreOption {
	return treetranslation.GuardDelete(func(t treetranslation.TreeTranslation) error {
		for _, id := range ids {
			if t.ID == id {
				return errors.New("foreign key violation")
			}
		}
		return nil
	})
}

func Test_Delete_Success(t *testing.T) {
	store := seededStore(t)
	flashes := &recordingFlashes{}
	router := Expose(mux.NewRouter(), store, flashes, previousPage, allPermited)

	response := getRequest(router, "http://test/tree-translation/delete?id=7")

	require.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, "/pages", response.Header().Get("Location"))
	assert.Empty(t, flashes.added)

	_, found, _ := store.FindOne(context.Background(), 7)
	assert.False(t, found)
}

func Test_Delete_Post(t *testing.T) {
	store := seededStore(t)
	router := Expose(mux.NewRouter(), store, &recordingFlashes{}, previousPage, allPermited)

	response := postRequest(router, "http://test/tree-translation/delete", url.Values{"id": {"7"}})

	require.Equal(t, http.StatusFound, response.Code)
	_, found, _ := store.FindOne(context.Background(), 7)
	assert.False(t, found)
}

func Test_Delete_NotFound(t *testing.T) {
	flashes := &recordingFlashes{}
	router := Expose(mux.NewRouter(), seededStore(t), flashes, previousPage, allPermited)

	response := getRequest(router, "http://test/tree-translation/delete?id=99")

	require.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "The requested page does not exist.")
	assert.Empty(t, flashes.added)
}

func Test_Delete_Twice(t *testing.T) {
	router := Expose(mux.NewRouter(), seededStore(t), &recordingFlashes{}, previousPage, allPermited)

	first := getRequest(router, "http://test/tree-translation/delete?id=7")
	second := getRequest(router, "http://test/tree-translation/delete?id=7")

	assert.Equal(t, http.StatusFound, first.Code)
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func Test_Delete_Failure(t *testing.T) {
	for _, test := range []struct {
		name            string
		deleteError     error
		expectedMessage string
	}{
		{
			name:            "generic error",
			deleteError:     errors.New("foreign key violation"),
			expectedMessage: "foreign key violation",
		},
		{
			name: "structured detail",
			deleteError: &treetranslation.DeleteError{
				ID:     3,
				Detail: "FOREIGN KEY constraint failed",
				Err:    errors.New("constraint failed"),
			},
			expectedMessage: "FOREIGN KEY constraint failed",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			store := seededStore(t, treetranslation.GuardDelete(func(tt treetranslation.TreeTranslation) error {
				return test.deleteError
			}))
			flashes := &recordingFlashes{}
			router := Expose(mux.NewRouter(), store, flashes, previousPage, allPermited)

			response := getRequest(router, "http://test/tree-translation/delete?id=3")

			require.Equal(t, http.StatusFound, response.Code)
			assert.Equal(t, "/pages/edit?id=3", response.Header().Get("Location"))
			assert.Equal(t, []flash{{Category: "error", Message: test.expectedMessage}}, flashes.added)

			_, found, _ := store.FindOne(context.Background(), 3)
			assert.True(t, found)
		})
	}
}

func Test_Delete_FlashFailure(t *testing.T) {
	router := Expose(mux.NewRouter(), seededStore(t, referenced(3)), &recordingFlashes{err: errors.New("cookie too large")}, previousPage, allPermited)

	response := getRequest(router, "http://test/tree-translation/delete?id=3")

	assert.Equal(t, http.StatusInternalServerError, response.Code)
}

func Test_Delete_Config(t *testing.T) {
	flashes := &recordingFlashes{}
	router := Expose(
		mux.NewRouter(),
		seededStore(t, referenced(3)),
		flashes,
		previousPage,
		allPermited,
		RedirectAfterDelete("/menu"),
		FlashCategory("danger"),
	)

	success := getRequest(router, "http://test/tree-translation/delete?id=7")
	failure := getRequest(router, "http://test/tree-translation/delete?id=3")

	assert.Equal(t, "/menu", success.Header().Get("Location"))
	assert.Equal(t, "/pages/edit?id=3", failure.Header().Get("Location"))
	assert.Equal(t, []flash{{Category: "danger", Message: "foreign key violation"}}, flashes.added)
}

func Test_Delete_InvalidID(t *testing.T) {
	for _, id := range []string{"", "abc", "0", "-4", "1.5"} {
		t.Run("id="+id, func(t *testing.T) {
			flashes := &recordingFlashes{}
			router := Expose(mux.NewRouter(), untouchedStore{t: t}, flashes, previousPage, allPermited)

			response := getRequest(router, "http://test/tree-translation/delete?id="+url.QueryEscape(id))

			assert.Equal(t, http.StatusBadRequest, response.Code)
			assert.Empty(t, flashes.added)
		})
	}
}

func Test_Delete_StoreUnavailable(t *testing.T) {
	flashes := &recordingFlashes{}
	router := Expose(mux.NewRouter(), brokenStore{}, flashes, previousPage, allPermited)

	response := getRequest(router, "http://test/tree-translation/delete?id=3")

	require.Equal(t, http.StatusInternalServerError, response.Code)
	assert.NotContains(t, response.Body.String(), "database is locked")
	assert.Empty(t, flashes.added)
}

func Test_Delete_ChecksPermits(t *testing.T) {
	store := seededStore(t)
	router := Expose(mux.NewRouter(), store, &recordingFlashes{}, previousPage, nobodyPermited)

	response := getRequest(router, "http://test/tree-translation/delete?id=7")

	require.Equal(t, http.StatusForbidden, response.Code)
	_, found, _ := store.FindOne(context.Background(), 7)
	assert.True(t, found)
}

func Test_Delete_MethodNotAllowed(t *testing.T) {
	router := Expose(mux.NewRouter(), seededStore(t), &recordingFlashes{}, previousPage, allPermited)

	response := executeRequest(router, "http://test/tree-translation/delete?id=7", http.MethodPut, "")

	assert.Equal(t, http.StatusMethodNotAllowed, response.Code)
}
