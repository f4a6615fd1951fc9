package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"kosh/internal/domain"
	"kosh/internal/port"
)

type ledgerRepo struct {
	db *sqlx.DB
}

// NewLedgerRepo creates a new PostgreSQL-backed LedgerRepository.
func NewLedgerRepo(db *sqlx.DB) port.LedgerRepository {
	return &ledgerRepo{db: db}
}

// InsertBatch writes all entries inside one transaction. IDs and creation
// timestamps are assigned here; the input slice is not mutated.
func (r *ledgerRepo) InsertBatch(ctx context.Context, entries []domain.LedgerEntry) ([]domain.LedgerEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.InsertBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	inserted := make([]domain.LedgerEntry, len(entries))
	copy(inserted, entries)

	const query = `INSERT INTO ledger_entries (
		id, entry_date, description, category, type,
		amount, status, invoice_ref, source, created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9, $10
	)`

	for i := range inserted {
		if inserted[i].ID == uuid.Nil {
			inserted[i].ID = uuid.New()
		}
		inserted[i].CreatedAt = now

		e := &inserted[i]
		if _, err := tx.ExecContext(ctx, query,
			e.ID, e.Date, e.Description, e.Category, e.Type,
			e.Amount, e.Status, e.InvoiceRef, e.Source, e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledgerRepo.InsertBatch: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ledgerRepo.InsertBatch commit: %w", err)
	}
	return inserted, nil
}

func (r *ledgerRepo) List(ctx context.Context, offset, limit int) ([]domain.LedgerEntry, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ledger_entries"); err != nil {
		return nil, 0, fmt.Errorf("ledgerRepo.List count: %w", err)
	}

	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM ledger_entries
		 ORDER BY entry_date DESC, created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ledgerRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *ledgerRepo) ListAll(ctx context.Context) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM ledger_entries ORDER BY entry_date DESC, created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("ledgerRepo.ListAll: %w", err)
	}
	return entries, nil
}

func (r *ledgerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ledger_entries WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ledgerRepo.Delete: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledgerRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrEntryNotFound
	}
	return nil
}
