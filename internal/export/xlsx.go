// Package export renders ledger entries into downloadable spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kosh/internal/domain"
)

const sheetName = "Ledger"

var headers = []string{"Date", "Description", "Category", "Type", "Amount", "Status", "Invoice Ref", "Source"}

// WriteLedgerXLSX writes all entries as a single-sheet workbook. Entries are
// written in the order given; amounts keep their sign convention.
func WriteLedgerXLSX(w io.Writer, entries []domain.LedgerEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		row := i + 2
		values := []interface{}{
			e.Date, e.Description, e.Category, string(e.Type),
			e.Amount, string(e.Status), e.InvoiceRef, string(e.Source),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
