package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"kosh/internal/domain"
	"kosh/internal/export"
	"kosh/internal/port"
)

// LedgerService defines read and maintenance operations over persisted
// ledger entries.
type LedgerService interface {
	List(ctx context.Context, offset, limit int) ([]domain.LedgerEntry, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type ledgerService struct {
	repo port.LedgerRepository
}

// NewLedgerService creates a new LedgerService implementation.
func NewLedgerService(repo port.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo}
}

func (s *ledgerService) List(ctx context.Context, offset, limit int) ([]domain.LedgerEntry, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *ledgerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ExportXLSX writes every ledger entry into a spreadsheet on w.
func (s *ledgerService) ExportXLSX(ctx context.Context, w io.Writer) error {
	entries, err := s.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	if err := export.WriteLedgerXLSX(w, entries); err != nil {
		return fmt.Errorf("exporting ledger: %w", err)
	}
	return nil
}
