package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"kosh/internal/category"
	openaiclassify "kosh/internal/classify/openai"
	"kosh/internal/config"
	openaiextract "kosh/internal/extract/openai"
	"kosh/internal/handler"
	"kosh/internal/ingest"
	"kosh/internal/logger"
	"kosh/internal/port"
	"kosh/internal/repository/postgres"
	"kosh/internal/router"
	"kosh/internal/service"
	s3storage "kosh/internal/storage/s3"
	"kosh/internal/transcribe/whisper"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	ledgerRepo := postgres.NewLedgerRepo(db)

	// Initialize media archive storage (optional)
	var storage port.ObjectStorage
	if cfg.S3.Bucket != "" {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize AI clients and pipeline stages
	extractor := openaiextract.NewExtractor(cfg.AI.ExtractorConfig())
	transcriber := whisper.NewTranscriber(cfg.AI.TranscriberConfig())
	classifier := openaiclassify.NewClassifier(cfg.AI.ClassifierConfig())

	resolver := category.NewResolver(classifier)
	receiptAdapter := ingest.NewReceiptAdapter(extractor)
	voiceAdapter := ingest.NewVoiceAdapter(transcriber, extractor)
	qrAdapter := ingest.NewQRAdapter()

	// Initialize services
	ingestionSvc := service.NewIngestionService(
		receiptAdapter, voiceAdapter, qrAdapter,
		resolver, ledgerRepo, storage, cfg.S3.Bucket,
	)
	ledgerSvc := service.NewLedgerService(ledgerRepo)

	// Initialize handlers
	ingestH := handler.NewIngestHandler(ingestionSvc)
	ledgerH := handler.NewLedgerHandler(ledgerSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, ingestH, ledgerH, healthH)

	zlog.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
