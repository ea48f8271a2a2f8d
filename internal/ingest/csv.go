// Package ingest loads raw invoice records from CSV files, runs them
// through the cleaning pipeline, and persists the valid ones.
package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gstmind/gstmind/internal/model"
)

// Column aliases commonly seen in source files, mapped onto the
// canonical schema.
var headerAliases = map[string]string{
	"invoice no":   "invoice_no",
	"invoice_id":   "invoice_no",
	"invoice":      "invoice_no",
	"total":        "total_amount",
	"amount":       "total_amount",
	"tax":          "tax_amount",
	"supplier":     "supplier_state",
	"seller state": "supplier_state",
	"buyer":        "buyer_state",
}

// Jurisdiction applied when a source file carries no state columns.
const defaultState = "Delhi"

// Sequential IDs start here when the source has no invoice number column.
const generatedIDBase = 1001

// FindCSV locates the first CSV file in a data directory.
func FindCSV(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no CSV file found in %s", dir)
	}
	return matches[0], nil
}

// ReadRecords parses a CSV file into raw invoice records. Headers are
// normalized case-insensitively through the alias table; missing invoice
// numbers are generated sequentially; missing jurisdictions default.
// Unparseable amounts are carried as zero so the pipeline can flag them.
func ReadRecords(path string) ([]model.InvoiceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	columns := normalizeHeader(rows[0])
	hasInvoiceNo := false
	for _, col := range columns {
		if col == "invoice_no" {
			hasInvoiceNo = true
		}
	}

	records := make([]model.InvoiceRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]string, len(columns))
		for j, col := range columns {
			if j < len(row) {
				fields[col] = strings.TrimSpace(row[j])
			}
		}

		record := model.InvoiceRecord{
			InvoiceNo:     fields["invoice_no"],
			TotalAmount:   parseAmount(fields["total_amount"]),
			TaxAmount:     parseAmount(fields["tax_amount"]),
			SupplierState: fields["supplier_state"],
			BuyerState:    fields["buyer_state"],
		}

		if !hasInvoiceNo || record.InvoiceNo == "" {
			record.InvoiceNo = strconv.Itoa(generatedIDBase + i)
		}
		if record.SupplierState == "" {
			record.SupplierState = defaultState
		}
		if record.BuyerState == "" {
			record.BuyerState = defaultState
		}
		if record.TotalAmount != 0 {
			// Flat files carry no line detail; the declared total
			// becomes a single line item.
			record.Items = []model.LineItem{
				{Description: "invoice total", Amount: record.TotalAmount},
			}
		}

		records = append(records, record)
	}

	return records, nil
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, raw := range header {
		name := strings.ToLower(strings.TrimSpace(raw))
		if canonical, ok := headerAliases[name]; ok {
			name = canonical
		}
		columns[i] = name
	}
	return columns
}

func parseAmount(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}
