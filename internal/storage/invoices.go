package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
)

// InsertInvoice persists a cleaned invoice record together with its line
// items. The insert is idempotent: a record whose invoice number already
// exists is left untouched and reported as not inserted.
func (s *SQLiteStore) InsertInvoice(ctx context.Context, record model.InvoiceRecord) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateString(record.InvoiceNo, "invoice_no"); err != nil {
		return false, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO invoices (invoice_no, total_amount, tax_amount, supplier_state, buyer_state, transaction_type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(invoice_no) DO NOTHING
	`, record.InvoiceNo, record.TotalAmount, record.TaxAmount,
		record.SupplierState, record.BuyerState, string(record.TransactionType))
	if err != nil {
		return false, fmt.Errorf("failed to insert invoice %s: %w", record.InvoiceNo, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if inserted == 0 {
		return false, tx.Commit()
	}

	for _, item := range record.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_no, description, amount)
			VALUES (?, ?, ?)
		`, record.InvoiceNo, item.Description, item.Amount); err != nil {
			return false, fmt.Errorf("failed to insert line item for %s: %w", record.InvoiceNo, err)
		}
	}

	return true, tx.Commit()
}

// Execute runs a parameterized read statement and returns the result as
// ordered column→value rows, preserving store-return order. Store-level
// failures surface as backend-unavailable errors.
func (s *SQLiteStore) Execute(ctx context.Context, query string, args ...any) ([]model.Row, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(query, "query"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	results := make([]model.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
		}

		row := make(model.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBackendUnavailable, err)
	}

	return results, nil
}

// normalizeValue converts driver byte slices into strings so rows print
// and compare cleanly.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// CountInvoices reports the number of persisted invoices.
func (s *SQLiteStore) CountInvoices(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return count, nil
}
