// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"customer-admin/internal/client"
	"customer-admin/internal/config"
	"customer-admin/internal/db"
	"customer-admin/internal/domain/customer"
	adminHandler "customer-admin/internal/handlers/admin"
	customerHandler "customer-admin/internal/handlers/customer"
	wsHandler "customer-admin/internal/handlers/websocket"
	"customer-admin/internal/middleware"
	"customer-admin/internal/pkg/ratelimit"
	"customer-admin/internal/repository/memory"
	"customer-admin/internal/repository/postgres"
	customersvc "customer-admin/internal/service/customer"
	"customer-admin/internal/validation"
	"customer-admin/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg        config.AppConfig
	engine     *gin.Engine
	logger     *zap.Logger
	httpServer *http.Server

	pool        *pgxpool.Pool
	redisClient *redis.Client
	stopHub     context.CancelFunc
}

// NewServer wires every dependency. Without DATABASE_URL the customers
// live in memory; without REDIS_ADDR rate limiting is off.
func NewServer(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	return newServer(cfg, logger, nil)
}

// newServer uses limiter when given instead of building one on Redis.
func newServer(cfg config.AppConfig, logger *zap.Logger, limiter middleware.Allower) (*Server, error) {
	s := &Server{cfg: cfg, logger: logger}
	ctx := context.Background()

	// ----- Repository -----
	var customerRepo customer.Repository
	if cfg.DatabaseURL != "" {
		pool, err := db.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		s.pool = pool
		customerRepo = postgres.NewCustomerRepository(pool)
		logger.Info("[POSTGRES] connected")
	} else {
		customerRepo = memory.NewCustomerRepository()
		logger.Warn("DATABASE_URL not set, customers are kept in memory")
	}

	// ----- Redis rate limiter -----
	if limiter == nil && cfg.RedisAddr != "" {
		redisClient, err := db.NewRedisClient(db.RedisConfig{
			Addresses: []string{cfg.RedisAddr},
			Password:  cfg.RedisPass,
			PoolSize:  10,
		})
		if err != nil {
			logger.Warn("[REDIS] unavailable, rate limiting disabled", zap.Error(err))
		} else {
			s.redisClient = redisClient
			limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow)
			logger.Info("[REDIS] connected")
		}
	}

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	go hub.Run(hubCtx)

	// ----- Services -----
	validator := validation.New()
	customerService := customersvc.NewCustomerService(customerRepo, validator, hub, logger)

	// ----- Admin UI client -----
	api := client.New(client.Config{
		BaseURL: cfg.CustomerAPIURL,
		Timeout: cfg.ClientTimeout,
	}, logger)

	// ----- Handlers -----
	templates, err := adminHandler.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse admin templates: %w", err)
	}

	// The admin UI calls the API from this host, so its users are counted
	// on /admin by their own IP and loopback is exempt on /customer.
	handlers := &Handlers{
		CustomerHandler: customerHandler.NewCustomerHandler(customerService, logger),
		AdminHandler: adminHandler.NewAdminHandler(api, validator, adminHandler.Options{
			FlashDelay:       cfg.FlashDelay,
			DeleteFlashDelay: cfg.DeleteFlashDelay,
		}, logger),
		WSHandler:      wsHandler.NewWebSocketHandler(hub, cfg.AllowedOrigins, logger),
		RateLimit:      middleware.RateLimitMiddleware(limiter, logger, middleware.FromLoopback),
		AdminRateLimit: middleware.RateLimitMiddleware(limiter, logger),
	}

	// ----- Router -----
	s.engine = gin.New()
	if err := s.engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	s.engine.SetHTMLTemplate(templates)
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.RequestID(),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)
	SetupRouter(s.engine, handlers)

	s.httpServer = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP and releases the pool, Redis and the hub.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	s.stopHub()
	if s.redisClient != nil {
		if cerr := s.redisClient.Close(); cerr != nil {
			s.logger.Warn("failed to close redis", zap.Error(cerr))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
	return err
}
