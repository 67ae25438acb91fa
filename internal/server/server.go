package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"stocktrack/internal/catalog"
	"stocktrack/internal/config"
	"stocktrack/internal/database"
	custommiddleware "stocktrack/internal/middleware"
	"stocktrack/internal/repository"
	"stocktrack/internal/service"
	"stocktrack/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config      *config.Config
	logger      *zap.Logger
	db          *sql.DB
	redisClient *redis.Client
}

// NewServer wires the store, catalog client, services, and HTTP routes into
// a ready-to-listen server. redisClient may be nil to disable rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, dbService *database.Service, redisClient *redis.Client) *Server {
	db := dbService.DB()

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env == "development"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: 100,
			Window:            time.Minute,
			KeyPrefix:         "stocktrack_rate_limit",
		}, logger))
	}

	// Liveness endpoint
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Inventory tracking API is running"))
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, dbService.Health())
	})

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)

	// Initialize external catalog client
	catalogClient := catalog.NewClient(
		cfg.Catalog.BaseURL,
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
	)

	// Initialize services
	ingestionService := service.NewIngestionService(productRepo, catalogClient)
	queryService := service.NewQueryService(productRepo)
	analyticsService := service.NewAnalyticsService(productRepo)

	// Initialize handlers
	productHandler := transport.NewProductHandler(ingestionService, queryService, analyticsService, logger)

	authMiddleware := custommiddleware.APIKeyAuth(cfg.Auth.APIKey, logger)

	productHandler.RegisterRoutes(router, authMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config:      cfg,
		logger:      logger,
		db:          db,
		redisClient: redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
