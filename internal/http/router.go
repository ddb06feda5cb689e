package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/darcyvale/vitrine/internal/http/catalog"
	"github.com/darcyvale/vitrine/internal/http/client"
	"github.com/darcyvale/vitrine/internal/http/importcsv"
	"github.com/darcyvale/vitrine/internal/http/sale"
)

func New(
	salesV1 *sale.Handler,
	clientsV1 *client.Handler,
	catalogV1 *catalog.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			clientsV1.Routes(r)
		})

		r.Route("/categories", catalogV1.CategoryRoutes)

		r.Route("/models", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			catalogV1.ModelRoutes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
