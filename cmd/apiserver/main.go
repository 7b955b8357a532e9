// Command apiserver runs the FlareLab record API: document import and
// validation, catalog browsing, and draft export over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/flarelab/combust/internal/application/experiment"
	"github.com/flarelab/combust/internal/config"
	"github.com/flarelab/combust/internal/domain/record"
	"github.com/flarelab/combust/internal/domain/registry"
	"github.com/flarelab/combust/internal/infrastructure/database/postgres"
	"github.com/flarelab/combust/internal/infrastructure/database/postgres/repositories"
	"github.com/flarelab/combust/internal/infrastructure/database/redis"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
	"github.com/flarelab/combust/internal/infrastructure/monitoring/prometheus"
	"github.com/flarelab/combust/internal/infrastructure/storage/minio"
	httpserver "github.com/flarelab/combust/internal/interfaces/http"
	"github.com/flarelab/combust/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

// checkerFunc adapts a plain probe function to the handlers.Checker interface.
type checkerFunc func(ctx context.Context) error

func (f checkerFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logCfg := logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if cfg.Log.Output != "" {
		logCfg.OutputPaths = []string{cfg.Log.Output}
	}
	log, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	log.Info("starting apiserver",
		logging.Int("port", cfg.Server.Port),
		logging.String("mode", cfg.Server.Mode),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Schema registry, optionally extended from a species file.
	reg := registry.Default()
	if cfg.Registry.SpeciesFile != "" {
		extra, err := registry.LoadSpeciesFile(cfg.Registry.SpeciesFile)
		if err != nil {
			return fmt.Errorf("load species file: %w", err)
		}
		reg = reg.WithSpecies(extra)
		log.Info("species registry extended",
			logging.String("file", cfg.Registry.SpeciesFile),
			logging.Int("species", len(extra)),
		)
	}

	// Postgres catalog.
	if err := postgres.Migrate(cfg.Database, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	conn, err := postgres.NewConnection(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close()

	// Redis record cache.
	redisClient, err := redis.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	cache := redis.NewCache(redisClient, log,
		redis.WithPrefix(cfg.Redis.KeyPrefix),
		redis.WithDefaultTTL(cfg.Redis.DefaultTTL),
	)

	// MinIO document archive.
	archive, err := minio.NewArchive(ctx, cfg.MinIO, log)
	if err != nil {
		return fmt.Errorf("connect to minio: %w", err)
	}

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            "flarelab",
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, log)
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	metrics := prometheus.NewAppMetrics(collector)

	svc := experiment.NewService(experiment.Deps{
		Decoder:  record.NewDecoder(log),
		Encoder:  record.NewEncoder(reg, log),
		Catalog:  repositories.NewExperimentRepository(conn.Pool(), log),
		Archive:  archive,
		Cache:    redis.NewRecordCache(cache, cfg.Redis.DefaultTTL),
		Checksum: redis.DocumentKey,
		Metrics:  metrics,
		Logger:   log,
	})

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Records: handlers.NewRecordHandler(svc, cfg.Server.MaxBodySize, log),
		Health: handlers.NewHealthHandler(map[string]handlers.Checker{
			"postgres": checkerFunc(conn.HealthCheck),
			"redis":    checkerFunc(redisClient.Ping),
		}, log),
		Mode:      cfg.Server.Mode,
		Collector: collector,
		Metrics:   metrics,
		Logger:    log,
	})

	srv := httpserver.NewServer(cfg.Server, router, log)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")
	if err := srv.Shutdown(context.Background()); err != nil {
		return err
	}
	return <-errCh
}

// loadConfig reads the file at path, falling back to environment variables
// when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config file %s not found, using environment\n", path)
		return config.LoadFromEnv()
	}
	return config.Load(path)
}
