package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kosh/internal/category"
	"kosh/internal/domain"
	"kosh/internal/ingest"
	"kosh/internal/port"
	"kosh/internal/service"
)

type fakeRepo struct {
	entries   []domain.LedgerEntry
	insertErr error
}

func (f *fakeRepo) InsertBatch(_ context.Context, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	out := make([]domain.LedgerEntry, len(entries))
	copy(out, entries)
	for i := range out {
		out[i].ID = uuid.New()
	}
	f.entries = append(f.entries, out...)
	return out, nil
}

func (f *fakeRepo) List(_ context.Context, offset, limit int) ([]domain.LedgerEntry, int, error) {
	return f.entries, len(f.entries), nil
}

func (f *fakeRepo) ListAll(_ context.Context) ([]domain.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

type fakeStorage struct {
	uploads []port.UploadInput
	err     error
}

func (f *fakeStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, input)
	return &port.UploadOutput{Location: "s3://archive/" + input.Key}, nil
}

type fakeClassifier struct {
	prices map[string]float64
	err    error
}

func (f *fakeClassifier) CategorizeItems(_ context.Context, _ []port.ClassifierItem, _ []string) (map[string]float64, error) {
	return f.prices, f.err
}

type fakeExtractor struct {
	extraction *port.Extraction
	err        error
}

func (f *fakeExtractor) ExtractReceipt(_ context.Context, _ []byte, _ string, _ []string) (*port.Extraction, error) {
	return f.extraction, f.err
}

func (f *fakeExtractor) ExtractUtterance(_ context.Context, _ string, _ []string) (*port.Extraction, error) {
	return f.extraction, f.err
}

type fakeTranscriber struct {
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return f.transcript, f.err
}

func floatPtr(v float64) *float64 { return &v }

func newService(ex port.Extractor, tr port.Transcriber, clf port.Classifier, repo port.LedgerRepository, storage port.ObjectStorage, bucket string) service.IngestionService {
	return service.NewIngestionService(
		ingest.NewReceiptAdapter(ex),
		ingest.NewVoiceAdapter(tr, ex),
		ingest.NewQRAdapter(),
		category.NewResolver(clf),
		repo, storage, bucket,
	)
}

var cats = domain.NewCategorySet([]string{"Other", "Food", "Clothing"})

func TestIngestQR_FullPipeline(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeExtractor{}, &fakeTranscriber{}, &fakeClassifier{}, repo, nil, "")

	result, err := svc.IngestQR(context.Background(), &ingest.QRBill{
		Items: []ingest.QRItem{
			{Name: "Shirt", Quantity: 1, UnitPrice: 80, Category: "Clothing"},
		},
		Tax:  20,
		Date: "2026-08-15",
	}, cats)
	require.NoError(t, err)

	require.Len(t, result.Entries, 2, "item entry plus tax entry")
	assert.Equal(t, "Clothing", result.PrimaryCategory)
	assert.Equal(t, domain.CategoryPrices{"Clothing": 100}, result.CategoryPrices, "tax joins the primary category")
	assert.Equal(t, 100.0, result.Total)
	assert.Len(t, repo.entries, 2)
	for _, e := range result.Entries {
		assert.NotEqual(t, uuid.Nil, e.ID)
	}
}

func TestIngestQR_AggregateBill(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeExtractor{}, &fakeTranscriber{}, &fakeClassifier{}, repo, nil, "")

	result, err := svc.IngestQR(context.Background(), &ingest.QRBill{Total: floatPtr(150)}, cats)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, -150.0, result.Entries[0].Amount)
	assert.Equal(t, "Other", result.PrimaryCategory)
	assert.Equal(t, domain.CategoryPrices{"Other": 150}, result.CategoryPrices)
}

func TestIngestQR_PersistenceFailure(t *testing.T) {
	repo := &fakeRepo{insertErr: errors.New("db down")}
	svc := newService(&fakeExtractor{}, &fakeTranscriber{}, &fakeClassifier{}, repo, nil, "")

	_, err := svc.IngestQR(context.Background(), &ingest.QRBill{Total: floatPtr(10)}, cats)
	assert.ErrorIs(t, err, domain.ErrPersistFailed)
}

func TestIngestVoice_IncludesTranscript(t *testing.T) {
	repo := &fakeRepo{}
	ex := &fakeExtractor{extraction: &port.Extraction{
		Type: "Income",
		Items: []port.ExtractedItem{
			{Name: "Consulting", Quantity: 1, UnitPrice: 500, Category: "Other"},
		},
	}}
	tr := &fakeTranscriber{transcript: "received 500 for consulting"}
	svc := newService(ex, tr, &fakeClassifier{}, repo, nil, "")

	result, err := svc.IngestVoice(context.Background(), []byte{1}, "audio/webm", cats)
	require.NoError(t, err)

	assert.Equal(t, "received 500 for consulting", result.Transcript)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, 500.0, result.Entries[0].Amount, "voice income is positive")
}

func TestIngestReceipt_ArchivesMedia(t *testing.T) {
	repo := &fakeRepo{}
	storage := &fakeStorage{}
	ex := &fakeExtractor{extraction: &port.Extraction{
		Items: []port.ExtractedItem{
			{Name: "Apples", Quantity: 2, UnitPrice: 3, Category: "Food"},
		},
	}}
	svc := newService(ex, &fakeTranscriber{}, &fakeClassifier{}, repo, storage, "archive-bucket")

	result, err := svc.IngestReceipt(context.Background(), []byte{0xFF}, "image/jpeg", cats)
	require.NoError(t, err)

	require.Len(t, storage.uploads, 1)
	assert.Equal(t, "archive-bucket", storage.uploads[0].Bucket)
	assert.Contains(t, storage.uploads[0].Key, "ingest/scan/")
	assert.Contains(t, storage.uploads[0].Key, ".jpg")
	assert.Equal(t, storage.uploads[0].Key, result.ArchiveKey)
}

func TestIngestReceipt_ArchiveFailureIsNotFatal(t *testing.T) {
	repo := &fakeRepo{}
	storage := &fakeStorage{err: errors.New("s3 down")}
	ex := &fakeExtractor{extraction: &port.Extraction{
		Items: []port.ExtractedItem{
			{Name: "Apples", Quantity: 1, UnitPrice: 3, Category: "Food"},
		},
	}}
	svc := newService(ex, &fakeTranscriber{}, &fakeClassifier{}, repo, storage, "archive-bucket")

	result, err := svc.IngestReceipt(context.Background(), []byte{0xFF}, "image/jpeg", cats)
	require.NoError(t, err)
	assert.Empty(t, result.ArchiveKey)
	assert.Len(t, repo.entries, 1, "ledger write must still happen")
}

func TestIngestReceipt_ExtractionFailurePersistsNothing(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeExtractor{err: errors.New("api down")}, &fakeTranscriber{}, &fakeClassifier{}, repo, nil, "")

	_, err := svc.IngestReceipt(context.Background(), []byte{1}, "image/png", cats)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Empty(t, repo.entries)
}
