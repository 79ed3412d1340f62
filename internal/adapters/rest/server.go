package rest

import (
	"context"
	"net/http"
	"time"

	"listing-service/internal/constants"
	"listing-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port             string
	AllowedOrigins   []string
	AdminJWTSecret   string
	RequestTimeout   time.Duration
	ListingsTTL      time.Duration
	FilterOptionsTTL time.Duration
	PostalCodeTTL    time.Duration
}

type Handlers struct {
	Properties  *PropertyHandler
	Catalog     *CatalogHandler
	Favorites   *FavoritesHandler
	Leads       *LeadHandler
	PostalCodes *PostalCodeHandler
	Admin       *AdminHandler
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

// NewRouter собирает все маршруты; вынесен отдельно, чтобы тестировать без сокета
func NewRouter(cfg ServerConfig, h Handlers, cache port.ResponseCachePort, baseLogger port.LoggerPort) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constants.VisitorIDHeader, constants.TraceIDHeader},
		ExposedHeaders:   []string{constants.CacheHeader, constants.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", Healthz)

	r.Route("/api", func(r chi.Router) {
		// листинги, 1 час
		r.Group(func(r chi.Router) {
			r.Use(CacheMiddleware(cache, cfg.ListingsTTL))

			r.Get("/properties", h.Properties.SearchProperties)
			r.Get("/properties/highlighted", h.Properties.GetHighlighted)
			r.Get("/properties/exclusive", h.Properties.GetExclusive)
			r.Get("/properties/code/{code}", h.Properties.GetPropertyByCode)
			r.Get("/properties/{propertyID}", h.Properties.GetProperty)
		})

		// агрегаты по выборке, 4 часа
		r.Group(func(r chi.Router) {
			r.Use(CacheMiddleware(cache, cfg.FilterOptionsTTL))

			r.Get("/filter-options", h.Catalog.GetFilterOptions)
			r.Get("/locations", h.Catalog.GetLocations)
		})

		r.With(CacheMiddleware(cache, cfg.PostalCodeTTL)).
			Get("/postal-codes/{cep}", h.PostalCodes.LookupPostalCode)

		r.Post("/leads", h.Leads.SubmitLead)

		r.Route("/favorites", func(r chi.Router) {
			r.Use(VisitorMiddleware)

			r.Get("/", h.Favorites.ListFavorites)
			r.Post("/", h.Favorites.AddFavorite)
			r.Get("/properties", h.Favorites.ListFavoriteProperties)
			r.Delete("/{propertyID}", h.Favorites.RemoveFavorite)
		})

		// служебные маршруты
		r.Group(func(r chi.Router) {
			r.Use(AdminMiddleware(cfg.AdminJWTSecret))

			r.Get("/debug", h.Admin.Debug)
			r.Get("/test-properfy", h.Admin.TestUpstream)
			r.Post("/revalidate", h.Admin.Revalidate)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, h Handlers, cache port.ResponseCachePort, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg, h, cache, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
