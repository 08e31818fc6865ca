package http

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"
	logging "github.com/snabble/go-logging/v2"
)

type HealthCheckFunc func() error
type HealthPermit func(r *http.Request) bool

const (
	statusUp   = "UP"
	statusDown = "DOWN"
)

type healthResult struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthRoute exposes GET /health. The service is UP if every named check
// passes, e.g. {"status":"DOWN","checks":{"store":"DOWN"}}.
func HealthRoute(
	root *mux.Router,
	checks map[string]HealthCheckFunc,
	permit HealthPermit,
) {
	root.Handle("/health", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !permit(r) {
			sendError(w, ClientError("forbidden"), http.StatusForbidden)
			return
		}

		result, status := runHealthChecks(checks)
		response := Response{Writer: w, request: r}
		response.Send(status, result)
	})).
		Methods(http.MethodGet)
}

func runHealthChecks(checks map[string]HealthCheckFunc) (healthResult, int) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	result := healthResult{Status: statusUp, Checks: map[string]string{}}
	status := http.StatusOK
	for _, name := range names {
		if err := checks[name](); err != nil {
			logging.Log.WithError(err).WithField("check", name).Error("healthcheck returned an error")
			result.Checks[name] = statusDown
			result.Status = statusDown
			status = http.StatusServiceUnavailable
			continue
		}
		result.Checks[name] = statusUp
	}
	return result, status
}
