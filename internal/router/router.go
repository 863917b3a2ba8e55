package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recipebox-dev/recipebox/internal/middleware/metrics"
	"github.com/recipebox-dev/recipebox/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.Public.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.Post("/create", h.CreateUser)
		r.Post("/token", h.CreateToken)
		r.Route("/me", func(r chi.Router) {
			r.Use(authMw.RequireUser)
			r.Get("/", h.Me)
			r.Patch("/", h.UpdateMe)
		})
	})

	r.Route("/recipe", func(r chi.Router) {
		r.Use(authMw.RequireUser)

		r.Get("/tags", h.ListTags)
		r.Post("/tags", h.CreateTag)
		r.Get("/ingredients", h.ListIngredients)
		r.Post("/ingredients", h.CreateIngredient)

		r.Get("/recipes", h.ListRecipes)
		r.Post("/recipes", h.CreateRecipe)
		r.Route("/recipes/{recipe}", func(r chi.Router) {
			r.Get("/", h.GetRecipe)
			r.Put("/", h.UpdateRecipe)
			r.Patch("/", h.PatchRecipe)
			r.Delete("/", h.DeleteRecipe)
			r.Post("/upload-image", h.UploadImage)
		})
	})

	return r
}
