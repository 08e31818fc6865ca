package main

import (
	"errors"
	"flag"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/snabble/go-logging/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	treetranslation "github.com/snabble/go-treetranslation"
	"github.com/snabble/go-treetranslation/elastic"
	thttp "github.com/snabble/go-treetranslation/http"
	"github.com/snabble/go-treetranslation/kvdb"
	"github.com/snabble/go-treetranslation/memory"
	"github.com/snabble/go-treetranslation/session"
	"github.com/snabble/go-treetranslation/sqlite"
)

var errUnknownScheme = errors.New("unknown storage backend")

func main() {
	var (
		addr          = flag.String("addr", "0.0.0.0:8080", "default server address")
		dbStr         = flag.String("db", "sqlite://testdata/tree.db", "database connection string, one of memory://, sqlite://<path>, kvdb://<path>, elastic://<host:port>/<index>")
		logLevel      = flag.String("log-level", "info", "log level")
		textLogging   = flag.Bool("text-logging", false, "log as text instead of json")
		sessionName   = flag.String("session-name", session.DefaultName, "name of the session cookie")
		afterDelete   = flag.String("redirect-after-delete", "/pages", "redirect target after a successful delete")
		serviceName   = flag.String("service-name", "tree-translation", "otel service name")
		healthAllowed = flag.Bool("public-health", true, "expose /health to everybody")
	)
	flag.Parse()

	if err := logging.Set(*logLevel, *textLogging); err != nil {
		logging.Log.WithError(err).Fatal("unable to set up logging")
	}

	key := os.Getenv("SESSION_KEY")
	if len(key) < 32 {
		logging.Log.Fatal("SESSION_KEY has to be set to at least 32 bytes")
	}

	store, err := openStore(*dbStr)
	if err != nil {
		logging.Log.WithError(err).WithField("db", *dbStr).Fatal("could not open store")
	}

	sessions := session.NewCookieStore(*sessionName, []byte(key))

	router := mux.NewRouter()
	router.Use(sessions.RememberPages(thttp.DeletePath, "/flashes", "/health"))
	thttp.HealthRoute(router, map[string]thttp.HealthCheckFunc{"store": store.HealthCheck}, func(r *http.Request) bool { return *healthAllowed })
	thttp.FlashRoute(router, sessions)
	thttp.Expose(
		router,
		store,
		sessions,
		sessions,
		func(r thttp.Request) bool { return true },
		thttp.RedirectAfterDelete(*afterDelete),
	)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           otelhttp.NewHandler(router, *serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Log.WithField("address", *addr).WithField("providers", treetranslation.Providers()).Info("start and listen")
	if err := srv.ListenAndServe(); err != nil {
		logging.Log.WithError(err).Fatal("error during listen and serve")
	}
	logging.Log.Info("shutdown")
}

func openStore(dbStr string) (treetranslation.Store, error) {
	u, err := url.Parse(dbStr)
	if err != nil {
		return nil, err
	}

	switch u.Scheme {
	case memory.DriverName:
		return treetranslation.NewStore(memory.DriverName, "")
	case sqlite.DriverName:
		return treetranslation.NewStore(sqlite.DriverName, u.Host+u.Path)
	case kvdb.DriverName:
		return treetranslation.NewStore(kvdb.DriverName, u.Host+u.Path)
	case elastic.DriverName:
		return treetranslation.NewStore(elastic.DriverName, "http://"+u.Host+"/"+strings.TrimPrefix(u.Path, "/"))
	default:
		return nil, &url.Error{Op: "open", URL: dbStr, Err: errUnknownScheme}
	}
}
