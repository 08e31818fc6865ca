package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

type FlashReader interface {
	Flashes(w http.ResponseWriter, r *http.Request, category string) ([]string, error)
}

// FlashRoute exposes GET /flashes, which returns and clears the pending
// notices of the given categories, e.g. {"error": ["..."]}.
func FlashRoute(root *mux.Router, flashes FlashReader, categories ...string) {
	if len(categories) == 0 {
		categories = []string{defaultConfig().flashCategory}
	}

	root.Handle("/flashes", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := Response{Writer: w, request: r}
		out := map[string][]string{}
		for _, category := range categories {
			messages, err := flashes.Flashes(w, r, category)
			if err != nil {
				response.SendError(InternalError("read flashes: %v", err))
				return
			}
			out[category] = messages
		}
		response.Send(http.StatusOK, out)
	})).
		Methods(http.MethodGet)
}
