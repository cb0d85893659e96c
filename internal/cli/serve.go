package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/middleware"
	"github.com/mmynk/hourbook/internal/service"
	"github.com/mmynk/hourbook/pkg/api"
)

const shutdownTimeout = 10 * time.Second

// newHandler builds the HTTP handler serving both Connect services and /metrics.
func (a *app) newHandler() http.Handler {
	jwtManager := auth.NewJWTManager(a.cfg.JWTSecret, a.cfg.TokenTTL)

	mux := http.NewServeMux()

	hourbookPath, hourbookHandler := api.NewHourbookServiceHandler(
		service.NewHourbookService(a.store),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)
	mux.Handle(hourbookPath, hourbookHandler)

	adminPath, adminHandler := api.NewAdminServiceHandler(
		service.NewAdminService(a.store, jwtManager, a.logger),
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.RequireAdmin(jwtManager, api.AdminServiceLoginProcedure),
		),
	)
	mux.Handle(adminPath, adminHandler)

	mux.Handle("/metrics", a.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})
}

// serve runs the RPC server until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.newHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", a.cfg.Addr, "backend", a.cfg.Backend)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
