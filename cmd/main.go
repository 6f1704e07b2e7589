package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "thermostat_panel/docs"
	"thermostat_panel/internal/config"
	"thermostat_panel/internal/device"
	"thermostat_panel/internal/handlers"
	"thermostat_panel/internal/logger"
	"thermostat_panel/internal/metrics"
	"thermostat_panel/internal/repository"
	"thermostat_panel/internal/repository/db"
	"thermostat_panel/internal/server"
	"thermostat_panel/internal/service"
	"thermostat_panel/internal/view"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	configDir       = "configs" // configs/config.yml
	shutdownTimeout = 10 * time.Second
	// requestsPerOperation bounds the device round trips of one panel
	// operation (PID update: /pid, /, /status, /config).
	requestsPerOperation = 4
)

// @title                       Thermostat Panel API
// @version                     1.0
// @description                 Operator API of the thermostat control panel: page model, device commands and event log.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)

	sqlDB, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	clientOpts := []device.Option{device.WithTimeout(cfg.Device.Timeout)}
	svcOpts := service.Options{
		Log:  log,
		Auth: service.AuthConfig{SigningKey: cfg.Auth.SigningKey, TokenTTL: cfg.Auth.TokenTTL},
	}
	var handlerOpts []handlers.Option
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		pm := metrics.New(reg)
		clientOpts = append(clientOpts, device.WithObserver(pm))
		svcOpts.Counter = pm
		handlerOpts = append(handlerOpts, handlers.WithMetrics(metrics.Handler(reg)))
	}

	client, err := device.NewClient(cfg.Device.BaseURL, clientOpts...)
	if err != nil {
		log.Fatalw("invalid device.base_url", "base_url", cfg.Device.BaseURL, "err", err)
	}
	page := view.NewPage(view.DefaultLayout())
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, client, page, svcOpts)
	apiHandler := handlers.NewHandler(services, log, handlerOpts...)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// first page load; the scheduler keeps polling even if the device is down
	if err := services.Load(ctx); err != nil {
		log.Warnw("initial page load failed", "base_url", cfg.Device.BaseURL, "err", err)
	}
	poller := service.StartScheduler(ctx, cfg.Device.PollInterval, services.Poll)

	srv := server.New(requestsPerOperation*cfg.Device.Timeout + time.Second)
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, poller, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "path", cfg.DB.Path)
	return db.InitDB(cfg.DB.Path)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("panel listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, poller *service.Scheduler, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()
	poller.Stop()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
