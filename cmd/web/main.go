// Command web serves the browser greeting page on WEB_PORT.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/greeting-demo/internal/platform/config"
	applog "github.com/janisto/greeting-demo/internal/platform/logging"
	appmiddleware "github.com/janisto/greeting-demo/internal/platform/middleware"
	"github.com/janisto/greeting-demo/internal/platform/respond"
	"github.com/janisto/greeting-demo/internal/web"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	applog.Setup(applog.WithService("greeting-web", Version))
	defer func() { _ = applog.Sync() }()
	if err := config.LoadDotEnv(); err != nil {
		applog.LogWarn(context.Background(), "dotenv load failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config.LoadWeb(), nil); err != nil {
		applog.LogError(context.Background(), "web failed", err)
		_ = applog.Sync()
		os.Exit(1)
	}
}

func newRouter(cfg config.Web) http.Handler {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.Security(appmiddleware.ResourcePolicySameOrigin),
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)
	web.Register(router, cfg.GreetingURL)
	return router
}

// run binds cfg.Port, serves the page until ctx is done and then shuts down.
// ready, when non-nil, receives the bound address once the listener is open.
func run(ctx context.Context, cfg config.Web, ready chan<- net.Addr) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("binding %s: %w", srv.Addr, err)
	}
	applog.LogInfo(ctx, "web listening", zap.Int("port", cfg.Port), zap.String("greetingUrl", cfg.GreetingURL))
	if ready != nil {
		ready <- ln.Addr()
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
