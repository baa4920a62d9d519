// Command seedfactors converts the EPA supply chain GHG emission factor
// workbook into a SQL seed file.
// Usage: go run ./cmd/seedfactors [workbook.xlsx]
// Output: db/seeds/emission_factors.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	defaultWorkbook = "SupplyChainGHGEmissionFactors_v1.2_NAICS_CO2e_USD.xlsx"
	outPath         = "db/seeds/emission_factors.sql"
	batchSize       = 500
)

type factorEntry struct {
	code   string
	title  string
	factor float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := defaultWorkbook
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := parseFactorSheet(f)
	if err != nil {
		return fmt.Errorf("parse factor sheet: %w", err)
	}
	log.Printf("parsed %d emission factors", len(entries))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Supply chain emission factor seed data generated from the EPA workbook.",
		fmt.Sprintf("-- %d entries in batches of %d.", len(entries), batchSize),
		"-- Run: make seed-factors",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d entries (%d batches) in %s",
		len(entries), (len(entries)+batchSize-1)/batchSize, outPath)
	return nil
}

// parseFactorSheet reads the first sheet of the EPA workbook.
// Columns: A(0)=2017 NAICS code, B(1)=2017 NAICS title,
// E(4)=supply chain emission factor with margins (kg CO2e/USD).
// Data starts at row index 1 (row 0 is the header).
func parseFactorSheet(f *excelize.File) ([]factorEntry, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var entries []factorEntry
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		code := strings.TrimSpace(cellVal(row, 0))
		title := strings.TrimSpace(cellVal(row, 1))
		factorStr := strings.TrimSpace(cellVal(row, 4))
		if code == "" || title == "" || factorStr == "" || seen[code] {
			continue
		}

		factor, perr := strconv.ParseFloat(factorStr, 64)
		if perr != nil || factor < 0 {
			continue
		}

		seen[code] = true
		entries = append(entries, factorEntry{code: code, title: title, factor: factor})
	}
	return entries, nil
}

func writeBatch(out *os.File, entries []factorEntry) error {
	if _, err := fmt.Fprintln(out, "INSERT INTO emission_factors (naics_code, title, factor_kg_per_usd) VALUES"); err != nil {
		return err
	}
	for i, e := range entries {
		sep := ","
		if i == len(entries)-1 {
			sep = ""
		}
		_, err := fmt.Fprintf(out, "('%s', '%s', %g)%s\n",
			escapeSQL(e.code), escapeSQL(e.title), e.factor, sep)
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, "ON CONFLICT (naics_code) DO UPDATE SET title = EXCLUDED.title, factor_kg_per_usd = EXCLUDED.factor_kg_per_usd;")
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
