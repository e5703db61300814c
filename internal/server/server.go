package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"catalog-manager/internal/client"
	"catalog-manager/internal/config"
	"catalog-manager/internal/database"
	custommiddleware "catalog-manager/internal/middleware"
	"catalog-manager/internal/repository"
	"catalog-manager/internal/service"
	"catalog-manager/internal/transport"
	"catalog-manager/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Services bundles the catalog services behind the API and web routers
type Services struct {
	Categories service.CategoryService
	Products   service.ProductService
}

// NewLocalServices wires the services over the store
func NewLocalServices(db *sqlx.DB, queries database.Queries, logger *zap.Logger, opts ...service.Option) Services {
	return Services{
		Categories: service.NewCategoryService(repository.NewCategoryRepository(db, queries.Category, logger), logger),
		Products:   service.NewProductService(repository.NewProductRepository(db, queries.Product, logger), logger, opts...),
	}
}

// NewRemoteServices wires the services over the REST API at cfg.RestURL
func NewRemoteServices(cfg config.WebConfig, logger *zap.Logger) Services {
	c := client.New(cfg.RestURL, cfg.ClientTimeout, logger)
	return Services{
		Categories: client.NewCategoryClient(c),
		Products:   client.NewProductClient(c),
	}
}

// HealthFunc reports the state of the backing store
type HealthFunc func(ctx context.Context) map[string]string

// APIOptions holds the optional parts of the REST router
type APIOptions struct {
	Health      HealthFunc
	RedisClient *redis.Client
}

// NewAPIRouter builds the REST API router
func NewAPIRouter(cfg *config.Config, logger *zap.Logger, services Services, opts APIOptions) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))

	if cfg.RateLimit.Enabled && opts.RedisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(opts.RedisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "catalog_api",
		}, logger))
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]string{"status": "ok"}
		if opts.Health != nil {
			status = opts.Health(r.Context())
		}
		code := http.StatusOK
		if status["status"] == "down" {
			code = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, code, status)
	})

	transport.NewCategoryHandler(services.Categories, logger).RegisterRoutes(router)
	transport.NewProductHandler(services.Products, logger).RegisterRoutes(router)

	if cfg.Tracing.Enabled {
		return otelhttp.NewHandler(router, "catalog-api")
	}
	return router
}

// NewWebRouter builds the web UI router
func NewWebRouter(cfg *config.Config, logger *zap.Logger, services Services, opts ...web.Option) http.Handler {
	router := chi.NewRouter()

	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	web.NewHandler(services.Categories, services.Products, logger, opts...).RegisterRoutes(router)

	if cfg.Tracing.Enabled {
		return otelhttp.NewHandler(router, "catalog-web")
	}
	return router
}

type Server struct {
	*http.Server
	logger  *zap.Logger
	closers []func() error
}

func newServer(cfg *config.Config, port string, handler http.Handler, logger *zap.Logger) *Server {
	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      handler,
			IdleTimeout:  time.Minute,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		logger: logger,
	}
}

// NewAPIServer serves the REST API over db. redisClient may be nil.
func NewAPIServer(cfg *config.Config, logger *zap.Logger, db *database.Service, queries database.Queries, redisClient *redis.Client) *Server {
	services := NewLocalServices(db.DB(), queries, logger)
	handler := NewAPIRouter(cfg, logger, services, APIOptions{
		Health:      db.Health,
		RedisClient: redisClient,
	})

	server := newServer(cfg, cfg.Server.Port, handler, logger)
	server.closers = append(server.closers, func() error { return db.Close(logger) })
	if redisClient != nil {
		server.closers = append(server.closers, redisClient.Close)
	}
	return server
}

// NewWebServer serves the web UI. In local mode db backs the services,
// otherwise they call the REST API.
func NewWebServer(cfg *config.Config, logger *zap.Logger, db *database.Service, queries database.Queries) *Server {
	var services Services
	if cfg.Web.ServiceMode == config.ServiceModeLocal && db != nil {
		services = NewLocalServices(db.DB(), queries, logger)
	} else {
		services = NewRemoteServices(cfg.Web, logger)
	}

	server := newServer(cfg, cfg.Web.Port, NewWebRouter(cfg, logger, services), logger)
	if db != nil {
		server.closers = append(server.closers, func() error { return db.Close(logger) })
	}
	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			s.logger.Error("Failed to close server resource", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
