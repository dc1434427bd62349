// Package api exposes the HTTP surface: huma v2 operations mounted on a
// chi router, plus a couple of raw chi handlers for binary payloads.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/platefulapp/plateful-server/internal/config"
	"github.com/platefulapp/plateful-server/internal/ratelimit"
	"github.com/platefulapp/plateful-server/internal/search"
	"github.com/platefulapp/plateful-server/internal/service"
	"github.com/platefulapp/plateful-server/internal/store"
)

// Services groups everything the handlers call into.
type Services struct {
	Auth        *service.AuthService
	Users       *service.UserService
	Recipes     *service.RecipeService
	Tags        *service.TagService
	Ingredients *service.IngredientService
	Sessions    *service.SessionService
}

// Server wires the router, the OpenAPI layer and the services together.
type Server struct {
	store       *store.Store
	search      *search.Index
	services    Services
	router      chi.Router
	api         huma.API
	logger      *slog.Logger
	authLimiter *ratelimit.KeyedLimiter
}

// NewServer builds the full HTTP surface.
func NewServer(cfg *config.Config, st *store.Store, idx *search.Index, services Services, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	humaConfig := huma.DefaultConfig("Plateful API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:    st,
		search:   idx,
		services: services,
		router:   router,
		api:      api,
		logger:   logger,
		// Auth endpoints take 20 attempts per minute per IP with a small burst.
		authLimiter: ratelimit.New(20.0/60.0, 10),
	}

	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerRecipeRoutes()
	s.registerTagRoutes()
	s.registerIngredientRoutes()
	s.registerHealthRoutes()
	s.registerImageRoutes()

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}
