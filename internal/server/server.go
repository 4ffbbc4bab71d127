package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/bizkeeper/internal/config"
	"github.com/iudanet/bizkeeper/internal/server/accounts"
	"github.com/iudanet/bizkeeper/internal/server/handlers"
	"github.com/iudanet/bizkeeper/internal/server/middleware"
	"github.com/iudanet/bizkeeper/internal/server/records"
	"github.com/iudanet/bizkeeper/internal/server/storage/sqlite"
)

const (
	shutdownTimeout      = 10 * time.Second
	tokenCleanupInterval = time.Hour
	loginRateLimit       = 10
	loginRateWindow      = time.Minute
	healthPath           = "/api/v1/health"
)

// ErrNoJWTSecret секрет подписи токенов не задан
var ErrNoJWTSecret = errors.New("jwt secret is not configured")

// Server процесс authority: HTTP API, websocket hub и хранилище
type Server struct {
	logger   *slog.Logger
	storage  *sqlite.Storage
	accounts *accounts.Service
	hub      *handlers.Hub
	limiter  *middleware.RateLimiter
	http     *http.Server
}

// New открывает хранилище и собирает маршруты
func New(ctx context.Context, cfg config.Server, version string, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: set jwt_secret or %s", ErrNoJWTSecret, config.JWTSecretEnv)
	}

	st, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	jwtConfig := handlers.JWTConfig{
		Secret:          []byte(cfg.JWTSecret),
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
	}

	accountService := accounts.NewService(st, logger)
	recordService := records.NewService(st, logger)

	s := &Server{
		logger:   logger,
		storage:  st,
		accounts: accountService,
		hub:      handlers.NewHub(logger, recordService),
		limiter:  middleware.NewRateLimiter(loginRateLimit, loginRateWindow, logger),
	}

	authHandler := handlers.NewAuthHandler(logger, accountService, st, st, jwtConfig)
	healthHandler := handlers.NewHealthHandler(logger, version)
	collectionsHandler := handlers.NewCollectionsHandler(logger, recordService)

	authorized := middleware.AuthMiddleware(logger, jwtConfig)
	limited := middleware.RateLimitMiddleware(s.limiter)

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+healthPath, healthHandler.Health)
	mux.Handle("POST /api/v1/auth/login", limited(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/v1/auth/refresh", limited(http.HandlerFunc(authHandler.Refresh)))
	mux.Handle("POST /api/v1/auth/logout", authorized(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/v1/collections", authorized(http.HandlerFunc(collectionsHandler.List)))
	mux.Handle("GET /api/v1/collections/{collection}/{id}", authorized(http.HandlerFunc(collectionsHandler.Get)))
	mux.Handle("GET /api/v1/stats", authorized(http.HandlerFunc(collectionsHandler.Stats)))
	mux.Handle("GET /api/v1/ws", authorized(s.hub.Handler()))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{healthPath})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	s.http = &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	return s, nil
}

// Accounts сервис учетных записей (команда user add)
func (s *Server) Accounts() *accounts.Service {
	return s.accounts
}

// Handler корневой HTTP handler (для тестов)
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает запросы на переданном listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("Authority listening", "addr", ln.Addr().String())
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		// hijacked websocket соединения Shutdown не закрывает
		s.hub.Close()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		s.logger.Info("Authority stopped")
		return nil
	})

	g.Go(func() error {
		s.cleanupTokens(ctx)
		return nil
	})

	return g.Wait()
}

// cleanupTokens периодически удаляет просроченные refresh tokens
func (s *Server) cleanupTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.storage.DeleteExpiredTokens(ctx)
			if err != nil {
				s.logger.Warn("Failed to delete expired tokens", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("Expired tokens removed", "count", n)
			}
		}
	}
}

// Close освобождает ресурсы
func (s *Server) Close() error {
	s.limiter.Stop()
	return s.storage.Close()
}
