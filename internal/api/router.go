package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/mriera/bloglist-backend/internal/api/handlers"
	"github.com/mriera/bloglist-backend/internal/api/httpx"
	"github.com/mriera/bloglist-backend/internal/config"
	"github.com/mriera/bloglist-backend/internal/metrics"
	"github.com/mriera/bloglist-backend/internal/middleware"
	repo "github.com/mriera/bloglist-backend/internal/repository"
	"github.com/mriera/bloglist-backend/internal/services"
)

func NewRouter(cfg config.Config, us *services.UserService, bs *services.BlogService, users repo.Users, blogs repo.Blogs) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS))
	r.Use(middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.TokenExtractor)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	blogsH := handlers.NewBlogsHandler(bs)
	usersH := handlers.NewUsersHandler(us)
	loginH := handlers.NewLoginHandler(us)

	r.Route("/api", func(r chi.Router) {
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", blogsH.List)
			r.Get("/{id}", blogsH.Get)
			r.With(middleware.RequireUser(us)).Post("/", blogsH.Create)
			// PUT and DELETE intentionally carry no auth check: any
			// caller may update likes or remove a blog.
			r.Put("/{id}", blogsH.UpdateLikes)
			r.Delete("/{id}", blogsH.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", usersH.Create)
			r.Get("/", usersH.List)
		})

		r.Post("/login", loginH.Login)

		// The testing router resets the database between test runs.
		if cfg.Env == "test" {
			testingH := handlers.NewTestingHandler(users, blogs)
			r.Post("/testing/reset", testingH.Reset)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "unknown endpoint")
	})

	return r
}
