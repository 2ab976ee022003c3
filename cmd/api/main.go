package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	appinsights "github.com/datafloww/insights/internal/application/insights"
	appreports "github.com/datafloww/insights/internal/application/reports"
	"github.com/datafloww/insights/internal/config"
	dominsights "github.com/datafloww/insights/internal/domain/insights"
	domreports "github.com/datafloww/insights/internal/domain/reports"
	openaiclient "github.com/datafloww/insights/internal/infra/ai/openai"
	mysqlp "github.com/datafloww/insights/internal/infra/db/mysql"
	postgresp "github.com/datafloww/insights/internal/infra/db/postgres"
	"github.com/datafloww/insights/internal/infra/httpserver"
	minioStore "github.com/datafloww/insights/internal/infra/storage"
	"github.com/datafloww/insights/internal/middleware"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// connect database, pick adapters per driver
	var (
		db      *sql.DB
		store   dominsights.QueryStore
		schema  dominsights.SchemaProvider
		metrics domreports.MetricsSource
	)
	switch cfg.Database.Driver {
	case "mysql":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		store = mysqlp.NewQueryRepository(db)
		schema = mysqlp.NewSchemaRepository(db)
		metrics = mysqlp.NewMetricsRepository(db)
	default:
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		store = postgresp.NewQueryRepository(db)
		schema = postgresp.NewSchemaRepository(db)
		metrics = postgresp.NewMetricsRepository(db)
	}
	defer db.Close()

	// language model client
	model := openaiclient.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)

	// optional report archive
	var archive domreports.Archive
	if cfg.Minio.Enabled {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		archive = s
	}

	// init services
	insightsSvc := &appinsights.Service{
		Model:        model,
		Store:        store,
		Schema:       schema,
		Dialect:      cfg.Database.Driver,
		StageTimeout: cfg.StageTimeout(),
	}
	reportSvc := &appreports.Service{
		Model:        model,
		Metrics:      metrics,
		Archive:      archive,
		StageTimeout: cfg.StageTimeout(),
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if cfg.RateLimit.Capacity > 0 {
		mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	}
	mux.Get("/metrics", middleware.MetricsHandler)
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(insightsSvc, reportSvc, schema, cfg.Server.AllowOrigin))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
