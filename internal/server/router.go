package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/julianstephens/petspa/internal/constants"
	"github.com/julianstephens/petspa/internal/storage"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

type Options struct {
	Store storage.Provider
	// Quiet disables the access log.
	Quiet bool
}

// NewRouter serves the appointment API under /api.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if !opts.Quiet {
		r.Use(accessLog)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	h := &handlers{store: opts.Store}
	r.Route("/api/appointments", func(ar chi.Router) {
		ar.Use(bodyLimit(maxBodyBytes))

		ar.Post("/", h.create)
		ar.Get("/date/{date}", h.listByDate)
		ar.Get("/search", h.search)
		ar.Get("/{id}", h.get)
		ar.Put("/{id}", h.update)
		ar.Delete("/{id}", h.delete)
	})

	return otelhttp.NewHandler(r, constants.AppName+"-server")
}
