// Package api assembles the HTTP surface of the service.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/githbnaboulsi/shipcore-api/internal/api/handlers"
	"github.com/githbnaboulsi/shipcore-api/internal/api/middleware"
)

// Deps are the collaborators behind the routes.
type Deps struct {
	Tokens         handlers.TokenService
	Products       handlers.ProductStore
	AllowedOrigins []string
	APIKey         string
}

// NewRouter wires every route. OPTIONS on any path is answered by the CORS
// middleware before routing.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.MethodNotAllowed(handlers.MethodNotAllowedHandler())
	r.NotFound(handlers.NotFoundHandler())

	r.Get("/healthz", handlers.HealthHandler())

	r.Route("/oauth", func(r chi.Router) {
		r.Post("/exchange", handlers.ExchangeHandler(deps.Tokens))
		r.Get("/status", handlers.StatusHandler(deps.Tokens))
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", handlers.ListProductsHandler(deps.Products))
		r.With(middleware.APIKeyAuth(deps.APIKey)).Post("/", handlers.AddProductHandler(deps.Products))
	})

	return r
}
