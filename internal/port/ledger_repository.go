package port

import (
	"context"

	"github.com/google/uuid"

	"kosh/internal/domain"
)

// LedgerRepository defines the contract for ledger entry persistence.
// InsertBatch is atomic: either every entry of an ingestion is committed or
// none are.
type LedgerRepository interface {
	InsertBatch(ctx context.Context, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error)
	List(ctx context.Context, offset, limit int) ([]domain.LedgerEntry, int, error)
	ListAll(ctx context.Context) ([]domain.LedgerEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
