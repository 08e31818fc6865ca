// Package session keeps the per user flash notices and the url of the last
// visited page in a gorilla session.
package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	logging "github.com/snabble/go-logging/v2"
)

const (
	DefaultName = "treetranslation"

	previousURLKey = "__returnUrl"
)

type Store struct {
	sessions sessions.Store
	name     string
}

// New uses the gorilla store for the session called name.
func New(store sessions.Store, name string) *Store {
	return &Store{sessions: store, name: name}
}

// NewCookieStore keeps the session in a cookie signed with keyPairs.
func NewCookieStore(name string, keyPairs ...[]byte) *Store {
	cookies := sessions.NewCookieStore(keyPairs...)
	cookies.Options.HttpOnly = true
	cookies.Options.SameSite = http.SameSiteLaxMode
	return New(cookies, name)
}

// get ignores decoding errors of an existing cookie, the session starts
// empty in that case.
func (s *Store) get(r *http.Request) *sessions.Session {
	session, err := s.sessions.Get(r, s.name)
	if err != nil {
		logging.Log.WithError(err).Warn("discarding invalid session")
	}
	return session
}

// AddFlash stores a message for the next rendered page. It has to be
// called before the response header is written.
func (s *Store) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error {
	session := s.get(r)
	session.AddFlash(message, category)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Flashes returns and clears the messages of category.
func (s *Store) Flashes(w http.ResponseWriter, r *http.Request, category string) ([]string, error) {
	session := s.get(r)
	flashes := session.Flashes(category)
	if len(flashes) == 0 {
		return []string{}, nil
	}
	if err := session.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	messages := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// Remember stores url as the previous url of the session.
func (s *Store) Remember(w http.ResponseWriter, r *http.Request, url string) error {
	session := s.get(r)
	session.Values[previousURLKey] = url
	return session.Save(r, w)
}

// Previous returns the remembered url. Without one, it falls back to the
// path of a Referer on the same host and finally to "/".
func (s *Store) Previous(r *http.Request) string {
	if url, ok := s.get(r).Values[previousURLKey].(string); ok && url != "" {
		return url
	}
	if referer := sameHostReferer(r); referer != "" {
		return referer
	}
	return "/"
}

func sameHostReferer(r *http.Request) string {
	referer := r.Referer()
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil || (u.Host != "" && u.Host != r.Host) || (u.Host == "" && u.Scheme != "") {
		return ""
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") {
		return ""
	}
	return u.RequestURI()
}

// RememberPages returns a mux middleware, which remembers the url of every
// matched GET page request before calling the route. Requests not accepting
// text/html and paths starting with one of the skip prefixes are ignored.
func (s *Store) RememberPages(skip ...string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPageRequest(r) && !hasAnyPrefix(r.URL.Path, skip) {
				if err := s.Remember(w, r, r.URL.RequestURI()); err != nil {
					logging.Log.WithError(err).Error("could not remember url")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isPageRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && strings.Contains(r.Header.Get("Accept"), "text/html")
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
