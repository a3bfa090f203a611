package internal

import (
	"activitydash/internal/controllers"
	"activitydash/internal/monitor"
	"activitydash/internal/providers"
	"activitydash/internal/structures"
	"activitydash/internal/views"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the full HTTP surface: dashboard routes behind the
// metrics and compression middleware, plus health, metrics and static files.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	// Inner mux: dashboard routes
	dashMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		dashMux.Handle(route.Url, route.Handler)
	}
	instrumented := providers.MetricsMiddleware(metrics, providers.CompressionMiddleware(dashMux))

	// Outer mux: infrastructure + instrumented dashboard
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/static/", http.StripPrefix("/static/", providers.CompressionMiddleware(http.FileServerFS(views.Static()))))
	mux.Handle("/", instrumented)
	return mux
}

func NewApp(handler http.Handler, backendMonitor monitor.MonitorInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s against %s", conf.AppName, conf.Backend.BaseURL)

	app := &App{
		WebServer: &http.Server{
			Addr:              conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       conf.Backend.Timeout + 30*time.Second,
			// A triggered job blocks its command until the backend answers.
			WriteTimeout: conf.Backend.JobTimeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	backendMonitor.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		backendMonitor.Stop()
		return nil, fmt.Errorf("server error: %w", err)
	}

	backendMonitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
