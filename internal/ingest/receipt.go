package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"kosh/internal/domain"
	"kosh/internal/logger"
	"kosh/internal/port"
)

// ReceiptAdapter ingests scanned receipt or invoice images through a
// vision-capable extraction service.
type ReceiptAdapter struct {
	extractor port.Extractor
	log       zerolog.Logger
}

// NewReceiptAdapter creates a ReceiptAdapter.
func NewReceiptAdapter(extractor port.Extractor) *ReceiptAdapter {
	return &ReceiptAdapter{
		extractor: extractor,
		log:       logger.WithComponent("receipt-adapter"),
	}
}

// Ingest extracts structured items from an image. Extraction failures are
// surfaced, not defaulted: with no item data there is nothing meaningful to
// record.
func (a *ReceiptAdapter) Ingest(ctx context.Context, image []byte, contentType string, categories domain.CategorySet) (*domain.NormalizedBill, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("no image provided: %w", domain.ErrMissingInput)
	}
	if _, ok := domain.AllowedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("content type %q: %w", contentType, domain.ErrUnsupportedMedia)
	}

	ex, err := a.extractor.ExtractReceipt(ctx, image, contentType, categories)
	if err != nil {
		a.log.Error().Err(err).Msg("receipt extraction failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	bill := billFromExtraction(ex, domain.SourceScan, categories.Fallback())
	if err := validateExtractedBill(bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// validateExtractedBill guards against an extraction service violating its
// numeric contract (negative prices, non-positive quantities).
func validateExtractedBill(bill *domain.NormalizedBill) error {
	for _, it := range bill.Items {
		if it.Quantity <= 0 || it.UnitPrice < 0 {
			return fmt.Errorf("item %q has invalid numbers: %w", it.Name, domain.ErrExtractionFailed)
		}
	}
	return nil
}
