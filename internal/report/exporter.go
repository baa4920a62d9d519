// Package report renders finalized results as an Excel workbook for
// download by sustainability teams.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Rahul-1611/AEROCARBON/internal/domain"
	"github.com/Rahul-1611/AEROCARBON/internal/port"
)

const sheetName = "Emissions"

// exportLimit caps how many finalized results a single export covers.
const exportLimit = 1000

var headers = []string{
	"Doc ID", "Vendor", "Invoice Number", "Invoice Date", "Currency",
	"Grand Total", "Category", "NAICS Code", "Spend kgCO2e",
	"Logistics kgCO2e", "Total kgCO2e", "Verified Factor",
	"Audit Valid", "Audit Flags", "Finalized At",
}

// Exporter builds xlsx reports from finalized results.
type Exporter struct {
	metrics port.MetricsRepository
}

func NewExporter(metrics port.MetricsRepository) *Exporter {
	return &Exporter{metrics: metrics}
}

// WriteXLSX streams a workbook of all finalized results to w.
func (e *Exporter) WriteXLSX(ctx context.Context, w io.Writer) error {
	results, err := e.metrics.ListFinalized(ctx, exportLimit)
	if err != nil {
		return fmt.Errorf("listing finalized results: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, result := range results {
		if err := writeRow(f, i+2, &result); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, row int, result *domain.FinalResult) error {
	values := []interface{}{
		result.DocID.String(),
		result.Extraction.VendorName,
		result.Extraction.InvoiceNumber,
		result.Extraction.InvoiceDate,
		result.Extraction.Currency,
		result.Extraction.GrandTotal,
		result.Carbon.Category,
		result.Carbon.NAICSCode,
		result.Carbon.SpendBasedKgCO2e,
		result.Carbon.LogisticsKgCO2e,
		result.Carbon.TotalKgCO2e,
		result.Carbon.IsVerifiedMatch,
		result.Audit.IsValid,
		strings.Join(result.Audit.AuditFlags, "; "),
		result.FinalizedAt.Format("2006-01-02 15:04:05"),
	}
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
