package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"kosh/internal/category"
	"kosh/internal/domain"
	"kosh/internal/ingest"
	"kosh/internal/ledger"
	"kosh/internal/logger"
	"kosh/internal/port"
)

// IngestionResult is the DTO returned for every successful ingestion. Entries
// are the persisted ledger rows; CategoryPrices includes tax attributed to
// the primary category.
type IngestionResult struct {
	Entries         []domain.LedgerEntry  `json:"entries"`
	CategoryPrices  domain.CategoryPrices `json:"category_prices"`
	PrimaryCategory string                `json:"primary_category"`
	Total           float64               `json:"total"`
	Transcript      string                `json:"transcript,omitempty"`
	ArchiveKey      string                `json:"archive_key,omitempty"`
}

// IngestionService defines the transaction ingestion contract. Each method
// runs one input modality through the full pipeline: adapter, category
// resolution, ledger materialization, and batch persistence.
type IngestionService interface {
	IngestReceipt(ctx context.Context, image []byte, contentType string, categories domain.CategorySet) (*IngestionResult, error)
	IngestVoice(ctx context.Context, audio []byte, contentType string, categories domain.CategorySet) (*IngestionResult, error)
	IngestQR(ctx context.Context, bill *ingest.QRBill, categories domain.CategorySet) (*IngestionResult, error)
}

type ingestionService struct {
	receipts      *ingest.ReceiptAdapter
	voice         *ingest.VoiceAdapter
	qr            *ingest.QRAdapter
	resolver      *category.Resolver
	repo          port.LedgerRepository
	storage       port.ObjectStorage // nil disables media archiving
	archiveBucket string
	log           zerolog.Logger
}

// NewIngestionService creates a new IngestionService implementation. storage
// may be nil, in which case raw media is not archived.
func NewIngestionService(
	receipts *ingest.ReceiptAdapter,
	voice *ingest.VoiceAdapter,
	qr *ingest.QRAdapter,
	resolver *category.Resolver,
	repo port.LedgerRepository,
	storage port.ObjectStorage,
	archiveBucket string,
) IngestionService {
	return &ingestionService{
		receipts:      receipts,
		voice:         voice,
		qr:            qr,
		resolver:      resolver,
		repo:          repo,
		storage:       storage,
		archiveBucket: archiveBucket,
		log:           logger.WithComponent("ingestion-service"),
	}
}

func (s *ingestionService) IngestReceipt(ctx context.Context, image []byte, contentType string, categories domain.CategorySet) (*IngestionResult, error) {
	bill, err := s.receipts.Ingest(ctx, image, contentType, categories)
	if err != nil {
		return nil, err
	}

	archiveKey := s.archive(ctx, domain.SourceScan, image, contentType, domain.AllowedImageTypes)
	result, err := s.finish(ctx, bill, categories)
	if err != nil {
		return nil, err
	}
	result.ArchiveKey = archiveKey
	return result, nil
}

func (s *ingestionService) IngestVoice(ctx context.Context, audio []byte, contentType string, categories domain.CategorySet) (*IngestionResult, error) {
	bill, err := s.voice.Ingest(ctx, audio, contentType, categories)
	if err != nil {
		return nil, err
	}

	archiveKey := s.archive(ctx, domain.SourceVoice, audio, contentType, domain.AllowedAudioTypes)
	result, err := s.finish(ctx, bill, categories)
	if err != nil {
		return nil, err
	}
	result.Transcript = bill.Transcript
	result.ArchiveKey = archiveKey
	return result, nil
}

func (s *ingestionService) IngestQR(ctx context.Context, qrBill *ingest.QRBill, categories domain.CategorySet) (*IngestionResult, error) {
	bill, err := s.qr.Ingest(qrBill)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, bill, categories)
}

// finish runs the shared tail of the pipeline: resolve categories,
// materialize entries, persist the batch atomically.
func (s *ingestionService) finish(ctx context.Context, bill *domain.NormalizedBill, categories domain.CategorySet) (*IngestionResult, error) {
	explicitTotal := 0.0
	if bill.ExplicitTotal != nil {
		explicitTotal = *bill.ExplicitTotal
	}

	res := s.resolver.Resolve(ctx, bill.Items, categories, explicitTotal)

	entries, err := ledger.Materialize(ledger.Input{
		Bill:    bill,
		Items:   res.Items,
		Primary: res.Primary,
	})
	if err != nil {
		return nil, err
	}

	persisted, err := s.repo.InsertBatch(ctx, entries)
	if err != nil {
		s.log.Error().Err(err).Int("entries", len(entries)).Msg("ledger batch insert failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistFailed, err)
	}

	prices := make(domain.CategoryPrices, len(res.Prices))
	for cat, total := range res.Prices {
		prices[cat] = total
	}
	if bill.Tax > 0 {
		prices[res.Primary] += bill.Tax
	}

	s.log.Info().
		Str("source", string(bill.Source)).
		Str("primary_category", res.Primary).
		Int("entries", len(persisted)).
		Msg("ingested bill")

	return &IngestionResult{
		Entries:         persisted,
		CategoryPrices:  prices,
		PrimaryCategory: res.Primary,
		Total:           prices.Sum(),
	}, nil
}

// archive uploads the raw media to object storage. Failures are logged and
// swallowed: the ledger write already happened or is about to, and archival
// is best-effort.
func (s *ingestionService) archive(ctx context.Context, source domain.Source, data []byte, contentType string, extensions map[string]string) string {
	if s.storage == nil || s.archiveBucket == "" {
		return ""
	}

	base := contentType
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	ext, ok := extensions[base]
	if !ok {
		ext = "bin"
	}
	key := fmt.Sprintf("ingest/%s/%s.%s", source, uuid.New(), ext)

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveBucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
	}); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("media archive upload failed")
		return ""
	}
	return key
}
