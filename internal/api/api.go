// Package api exposes the storefront over HTTP: catalog reads are
// public, catalog writes and order management require an admin session.
package api

import (
	"net/http"
	"time"

	"github.com/asfandyar/optico-store/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type API struct {
	storage Storage
	cfg     *config.Config
	log     zerolog.Logger
}

func New(storage Storage, cfg *config.Config, log zerolog.Logger) *API {
	return &API{storage: storage, cfg: cfg, log: log}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(a.log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", duration).
			Msg("http request")
	}))
	r.Use(a.withClaims)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", a.login)
		r.Post("/auth/register", a.register)

		r.Get("/products", a.listProducts)
		r.Get("/products/{id}", a.getProduct)
		r.Get("/categories", a.listCategories)

		r.Post("/orders", a.createOrder)
		r.With(a.requireAuth).Get("/orders", a.listOrders)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAdmin)
			r.Post("/products", a.createProduct)
			r.Put("/products/{id}", a.updateProduct)
			r.Delete("/products/{id}", a.deleteProduct)
			r.Post("/categories", a.createCategory)
			r.Patch("/orders/{id}/status", a.updateOrderStatus)
		})
	})

	return r
}
