package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	logging "github.com/snabble/go-logging/v2"

	treetranslation "github.com/snabble/go-treetranslation"
)

// DeletePath is the route of the delete action. The id is passed as query
// or form parameter.
const DeletePath = "/tree-translation/delete"

type Permit func(request Request) bool

type Store interface {
	FindOne(ctx context.Context, id int64) (treetranslation.TreeTranslation, bool, error)
	Delete(ctx context.Context, t treetranslation.TreeTranslation) error
}

// FlashStore keeps one time notices in the session of the client.
type FlashStore interface {
	AddFlash(w http.ResponseWriter, r *http.Request, category, message string) error
}

// PreviousURL knows the page the client visited before the current request.
type PreviousURL interface {
	Previous(r *http.Request) string
}

func Expose(
	router *mux.Router,
	store Store,
	flashes FlashStore,
	previous PreviousURL,
	canDelete Permit,
	configOpts ...ConfigOption,
) *mux.Router {
	cfg := configFromOptions(configOpts)

	router.Handle(DeletePath, createHandler(canDelete, deleteModel(store, flashes, previous, cfg))).
		Methods(http.MethodGet, http.MethodPost).
		Name("delete")

	return router
}

func createHandler(
	permit Permit,
	handler func(w Response, r Request),
) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := verifyID(w, r)
		if !ok {
			return
		}

		request := Request{OriginalRequest: r, ID: id}
		if !permit(request) {
			sendError(w, errors.New("forbidden"), http.StatusForbidden)
			return
		}
		handler(Response{Writer: w, request: r}, request)
	})
}

// verifyID checks, that a positive integer parameter with the name 'id'
// exists. Otherwise, it send an error to the client
func verifyID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		sendError(w, ClientError("invalid id"), http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func sendError(w http.ResponseWriter, err error, status int) bool {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if status >= 500 {
		// Do not let internal messages to the user
		fmt.Fprintln(w, "Internal Server Error")
		logging.Log.WithError(err).Errorf("Internal Server Error, Statuscode: %v", status)
	} else {
		fmt.Fprintln(w, err)
		logging.Log.WithError(err).Warnf("Client Error, Statuscode: %v", status)
	}
	return true
}
