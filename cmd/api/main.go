package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"accessibility.antwerp.org/internal/app"
	"accessibility.antwerp.org/internal/appconf"
	"accessibility.antwerp.org/internal/dataset"
	"accessibility.antwerp.org/internal/describe"
	"accessibility.antwerp.org/internal/geocode"
	"accessibility.antwerp.org/internal/gtfs"
	"accessibility.antwerp.org/internal/logging"
	"accessibility.antwerp.org/internal/restapi"
	"accessibility.antwerp.org/nodedb"
)

func main() {
	var (
		port            int
		envFlag         string
		apiKeysFlag     string
		rateLimit       int
		nodeSource      string
		dbPath          string
		gtfsURL         string
		refreshInterval time.Duration
		openAIKey       string
		verbose         bool
	)

	flag.IntVar(&port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&rateLimit, "rate-limit", 100, "Requests per second per API key (negative disables)")
	flag.StringVar(&nodeSource, "node-source", "https://data.antwerpen.be/transport_nodes.csv", "URL or path for the transport node table CSV")
	flag.StringVar(&dbPath, "db-path", "nodes.db", "Path for the sqlite node store")
	flag.StringVar(&gtfsURL, "gtfs-url", "https://gtfs.irail.be/de-lijn/de_lijn-gtfs.zip", "URL or path for a static GTFS zip file (empty disables route enrichment)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 24*time.Hour, "How often to reload the node table and GTFS feed")
	flag.StringVar(&openAIKey, "openai-key", "", "OpenAI API key for location descriptions (falls back to OPENAI_API_KEY)")
	flag.BoolVar(&verbose, "verbose", false, "Log dataset statistics on every refresh")
	flag.Parse()

	if openAIKey == "" {
		openAIKey = os.Getenv("OPENAI_API_KEY")
	}

	var apiKeys []string
	if apiKeysFlag != "" {
		apiKeys = strings.Split(apiKeysFlag, ",")
		for i := range apiKeys {
			apiKeys[i] = strings.TrimSpace(apiKeys[i])
		}
	}

	env := appconf.EnvFromString(envFlag)
	logger := logging.NewStructuredLogger(os.Stdout, slog.LevelInfo)

	db, err := nodedb.NewClient(nodedb.NewConfig(dbPath, env, verbose))
	if err != nil {
		logger.Error("failed to open node store", "error", err, "path", dbPath)
		os.Exit(1)
	}
	defer logging.SafeCloseWithLogging(db, logger, "node_store")

	datasetConfig := dataset.Config{
		Source:          nodeSource,
		RefreshInterval: refreshInterval,
		Verbose:         verbose,
	}
	datasetManager, err := dataset.NewManager(datasetConfig, db, logger)
	if err != nil {
		logger.Error("failed to load transport node table", "error", err, "source", nodeSource)
		os.Exit(1)
	}
	defer datasetManager.Shutdown()

	// GTFS enrichment is additive; a dead feed degrades to plain nodes
	// instead of keeping the service down.
	var gtfsManager *gtfs.Manager
	gtfsConfig := gtfs.Config{GtfsURL: gtfsURL, RefreshInterval: refreshInterval, Verbose: verbose}
	if gtfsURL != "" {
		gtfsManager, err = gtfs.InitManager(gtfsConfig, logger)
		if err != nil {
			logger.Error("failed to initialize GTFS manager, continuing without route enrichment", "error", err)
			gtfsManager = nil
		} else {
			defer gtfsManager.Shutdown()
		}
	}

	application := &app.Application{
		Config: app.Config{
			Port:      port,
			Env:       env,
			ApiKeys:   apiKeys,
			RateLimit: rateLimit,
		},
		Logger:        logger,
		DatasetConfig: datasetConfig,
		Dataset:       datasetManager,
		GtfsConfig:    gtfsConfig,
		GtfsManager:   gtfsManager,
		Describer:     describe.NewGenerator(describe.Config{APIKey: openAIKey}, logger),
		Geocoder:      geocode.NewClient(""),
	}

	api := restapi.NewRestAPI(application)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      api.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", env.String(),
		"node_count", datasetManager.NodeCount(), "gtfs_enabled", gtfsManager != nil)

	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}

	if err := <-shutdownErr; err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
