package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rahul-1611/AEROCARBON/internal/audit"
	"github.com/Rahul-1611/AEROCARBON/internal/carbon"
	"github.com/Rahul-1611/AEROCARBON/internal/config"
	"github.com/Rahul-1611/AEROCARBON/internal/extract"
	"github.com/Rahul-1611/AEROCARBON/internal/geo"
	"github.com/Rahul-1611/AEROCARBON/internal/handler"
	"github.com/Rahul-1611/AEROCARBON/internal/ingest"
	"github.com/Rahul-1611/AEROCARBON/internal/llm"
	"github.com/Rahul-1611/AEROCARBON/internal/llm/gemini"
	"github.com/Rahul-1611/AEROCARBON/internal/mapping"
	"github.com/Rahul-1611/AEROCARBON/internal/pipeline"
	"github.com/Rahul-1611/AEROCARBON/internal/report"
	"github.com/Rahul-1611/AEROCARBON/internal/repository/postgres"
	"github.com/Rahul-1611/AEROCARBON/internal/router"
	s3storage "github.com/Rahul-1611/AEROCARBON/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)
	extractionRepo := postgres.NewExtractionRepo(db)
	resultRepo := postgres.NewResultRepo(db)
	errorRepo := postgres.NewErrorRepo(db)
	factorRepo := postgres.NewFactorRepo(db)
	metricsRepo := postgres.NewMetricsRepo(db)

	// Initialize storage and external clients
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	geminiClient := gemini.NewClient(&cfg.Gemini)
	geocoder := geo.NewNominatimClient(&cfg.Geocoder)

	// Initialize pipeline stages
	retryCfg := llm.RetryConfig{
		MaxAttempts: cfg.Pipeline.MaxAttempts,
		Base:        cfg.Pipeline.RetryBase,
		Cap:         cfg.Pipeline.RetryCap,
	}
	extractor := extract.NewExtractor(geminiClient, retryCfg)
	mapper := mapping.NewMapper(geminiClient, retryCfg)
	engine := carbon.NewEngine(factorRepo, geocoder)
	auditor := audit.NewAuditor()

	orchestrator := pipeline.NewOrchestrator(pipeline.Deps{
		Docs:      docRepo,
		Extracts:  extractionRepo,
		Results:   resultRepo,
		Errors:    errorRepo,
		Storage:   s3Client,
		Extractor: extractor,
		Mapper:    mapper,
		Engine:    engine,
		Auditor:   auditor,
		Model:     geminiClient.Model(),
	}, &cfg.Pipeline)

	worker := pipeline.NewWorker(orchestrator, pipeline.WorkerConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})

	// Initialize services and handlers
	ingestSvc := ingest.NewService(docRepo, s3Client, &cfg.S3)
	exporter := report.NewExporter(metricsRepo)

	invoiceH := handler.NewInvoiceHandler(ingestSvc, orchestrator)
	metricsH := handler.NewMetricsHandler(metricsRepo, exporter)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(invoiceH, metricsH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	<-workerDone

	return nil
}
