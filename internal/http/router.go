package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"simon-jot/internal/handlers"
	"simon-jot/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	JotService service.JotService
	DB         handlers.DBPinger
	Backend    handlers.BackendPinger
	IndexHTML  string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	jotHandler := handlers.NewJotHandler(deps.JotService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Backend)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Mount("/jots", jotHandler.Routes())
	})

	// Serve the editor page at root
	r.Method(http.MethodGet, "/", handlers.NewIndexHandler(deps.IndexHTML))

	return r
}
