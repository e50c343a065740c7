package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/netlens/netlens/pkg/config"
	"github.com/netlens/netlens/pkg/observability"
	"github.com/netlens/netlens/pkg/plugins"
)

// Flags holds the command-line options
type Flags struct {
	PluginDir string
	BuildTree bool
	Silent    bool
	Serve     bool
	LogLevel  string
}

// netlens-plugins discovers the host's plugins, dumps the plugin table, and
// optionally serves the inventory over HTTP.
func main() {
	flags := parseFlags()

	logger := setupLogger(flags.LogLevel)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	layout := plugins.NewHostLayout()
	if flags.PluginDir != "" {
		layout.Primary = flags.PluginDir
		layout.System = filepath.Join(flags.PluginDir, plugins.APIVersion)
	}
	if flags.BuildTree {
		layout.BuildTree = true
	}

	opts := []plugins.Option{
		plugins.WithLogger(logger),
		plugins.WithLayout(layout),
		plugins.WithDenyList(cfg.Plugins.Deny),
	}

	var metricsRegistry *prometheus.Registry
	if flags.Serve && cfg.Observability.MetricsEnabled {
		metricsRegistry = prometheus.NewRegistry()
		opts = append(opts, plugins.WithMetrics(observability.NewMetrics(metricsRegistry)))
	}

	catalog := plugins.NewCatalog(opts...)
	registerCapabilityTypes(catalog, logger)

	mode := plugins.ReportFailures
	if flags.Silent {
		mode = plugins.Silent
	}
	catalog.Discover(mode)
	defer func() {
		if err := catalog.Teardown(); err != nil {
			logger.Warnf("Plugin teardown: %v", err)
		}
	}()

	catalog.DumpAll(os.Stdout)

	if flags.Serve {
		serve(cfg, catalog, metricsRegistry)
	}
}

// parseFlags parses command-line flags
func parseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.PluginDir, "plugin-dir", "", "Override the primary plugin directory")
	flag.BoolVar(&flags.BuildTree, "build-tree", false, "Treat the plugin directory as a build tree")
	flag.BoolVar(&flags.Silent, "silent", false, "Suppress per-plugin load failure diagnostics")
	flag.BoolVar(&flags.Serve, "serve", false, "Serve the plugin inventory over HTTP after discovery")
	flag.StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	return flags
}

// setupLogger configures the logger with the specified level
func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return logger
}

// registerCapabilityTypes installs the host's built-in capability types.
// Registration order fixes the bit slots, so new types go at the end.
func registerCapabilityTypes(catalog *plugins.Catalog, logger *logrus.Logger) {
	builtins := []struct {
		name   string
		symbol string
	}{
		{"decoder", "RegisterDecoders"},
		{"codec", "RegisterCodecs"},
		{"tap", "RegisterTaps"},
	}

	for _, b := range builtins {
		if _, err := catalog.RegisterType(b.name, plugins.SymbolPredicate(b.symbol)); err != nil {
			logger.Errorf("Failed to register capability type %q: %v", b.name, err)
		}
	}
}

// serve exposes the plugin inventory API until interrupted
func serve(cfg *config.Config, catalog *plugins.Catalog, metricsRegistry *prometheus.Registry) {
	log := observability.NewLogger(cfg.Observability.LogLevel, os.Stderr)

	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()
	plugins.NewHandlers(catalog).RegisterRoutes(api)
	if metricsRegistry != nil {
		router.Handle("/metrics", observability.MetricsHandler(metricsRegistry))
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Received shutdown signal, stopping inventory server")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Inventory server shutdown failed")
		}
	}()

	log.WithField("addr", server.Addr).Info("Serving plugin inventory")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("Inventory server failed")
		os.Exit(1)
	}
}
