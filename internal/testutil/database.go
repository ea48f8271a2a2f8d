// Package testutil provides shared helpers for tests that need a real store.
package testutil

import (
	"context"
	"testing"

	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/storage"
)

// SetupTestStore creates a migrated in-memory SQLite store and registers
// its cleanup with the test.
func SetupTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedInvoices inserts the given records, failing the test on any error.
func SeedInvoices(t *testing.T, store *storage.SQLiteStore, records ...model.InvoiceRecord) {
	t.Helper()

	ctx := context.Background()
	for _, record := range records {
		if _, err := store.InsertInvoice(ctx, record); err != nil {
			t.Fatalf("failed to seed invoice %s: %v", record.InvoiceNo, err)
		}
	}
}

// Invoice builds a normalized invoice record suitable for seeding.
func Invoice(invoiceNo string, total, tax float64, supplierState, buyerState string) model.InvoiceRecord {
	return model.InvoiceRecord{
		InvoiceNo:       invoiceNo,
		TotalAmount:     total,
		TaxAmount:       tax,
		SupplierState:   supplierState,
		BuyerState:      buyerState,
		TransactionType: model.DeriveTransactionType(supplierState, buyerState),
		Items: []model.LineItem{
			{Description: "seeded item", Amount: total},
		},
	}
}
