package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"catalog-admin/internal/config"
	"catalog-admin/internal/database"
	custommiddleware "catalog-admin/internal/middleware"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"
	"catalog-admin/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	for _, mw := range custommiddleware.DefaultMiddlewareStack() {
		router.Use(mw)
	}
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.IsDevelopment()))

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerWindow,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "catalog:ratelimit",
		}, logger))
	}
	router.Use(custommiddleware.ValidationMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := db.Health(r.Context())
		status := http.StatusOK
		if health["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(health)
	})

	// Initialize repositories
	sqlxDB := db.DB()
	categoryRepo := repository.NewCategoryRepository(sqlxDB)
	subCategoryRepo := repository.NewSubCategoryRepository(sqlxDB)
	brandRepo := repository.NewBrandRepository(sqlxDB)
	productRepo := repository.NewProductRepository(sqlxDB)
	imageRepo := repository.NewProductImageRepository(sqlxDB)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepo, subCategoryRepo, logger)
	subCategoryService := service.NewSubCategoryService(categoryRepo, subCategoryRepo, brandRepo, productRepo, logger)
	brandService := service.NewBrandService(categoryRepo, subCategoryRepo, brandRepo, productRepo, logger)
	productService := service.NewProductService(categoryRepo, subCategoryRepo, brandRepo, productRepo, logger)
	imageService := service.NewProductImageService(productRepo, imageRepo, logger)

	// Register routes
	transport.NewCategoryHandler(categoryService, subCategoryService, logger).RegisterRoutes(router)
	transport.NewSubCategoryHandler(subCategoryService, logger).RegisterRoutes(router)
	transport.NewBrandHandler(brandService, logger).RegisterRoutes(router)
	transport.NewProductHandler(productService, logger).RegisterRoutes(router)
	transport.NewProductImageHandler(imageService, logger).RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
