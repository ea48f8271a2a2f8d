package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/resolver"
	"github.com/gstmind/gstmind/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  resolver.IntentLabel
	}{
		{"interstate wins over everything", "show interstate invoices with tax", resolver.IntentInterstate},
		{"total and invoice", "total amount of invoice 101", resolver.IntentTotalAmount},
		{"tax keyword", "tax amount for invoice 101", resolver.IntentTaxAmount},
		{"gst keyword", "gst on 205", resolver.IntentTaxAmount},
		{"invoice alone", "show invoice 205", resolver.IntentInvoiceByID},
		{"nothing recognized", "hello there", resolver.IntentUnknown},
		{"case-insensitive", "TOTAL for INVOICE 7", resolver.IntentTotalAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Classify(tt.query))
		})
	}
}

func TestExtractInvoiceID(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		wantID int
		wantOK bool
	}{
		{"single id", "show invoice 101", 101, true},
		{"first digit run only", "invoice 101 and 202", 101, true},
		{"no digits", "show me everything", 0, false},
		{"digits mid-word", "inv101details", 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := resolver.ExtractInvoiceID(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestResolveByID(t *testing.T) {
	store := testutil.SetupTestStore(t)
	testutil.SeedInvoices(t, store,
		testutil.Invoice("101", 5000, 900, "Delhi", "Delhi"),
		testutil.Invoice("102", 1200, 216, "Delhi", "Karnataka"),
	)

	r := resolver.New(store)
	rows, err := r.Resolve(context.Background(), resolver.IntentTotalAmount, 101, true)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5000.0, rows[0]["total_amount"])
}

func TestResolveInterstateScan(t *testing.T) {
	store := testutil.SetupTestStore(t)
	testutil.SeedInvoices(t, store,
		testutil.Invoice("101", 5000, 900, "Delhi", "Delhi"),
		testutil.Invoice("102", 1200, 216, "Delhi", "Karnataka"),
		testutil.Invoice("103", 800, 144, "Kerala", "TamilNadu"),
	)

	r := resolver.New(store)
	rows, err := r.Resolve(context.Background(), resolver.IntentInterstate, 0, false)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestResolveErrors(t *testing.T) {
	store := testutil.SetupTestStore(t)
	r := resolver.New(store)
	ctx := context.Background()

	t.Run("unsupported intent", func(t *testing.T) {
		_, err := r.Resolve(ctx, resolver.IntentUnknown, 0, false)
		assert.ErrorIs(t, err, common.ErrUnsupportedIntent)
	})

	t.Run("missing invoice id", func(t *testing.T) {
		_, err := r.Resolve(ctx, resolver.IntentInvoiceByID, 0, false)
		assert.ErrorIs(t, err, common.ErrMissingInvoiceID)
	})
}

// downStore simulates an unreachable store.
type downStore struct{}

func (downStore) Execute(_ context.Context, _ string, _ ...any) ([]model.Row, error) {
	return nil, errors.New("disk I/O error")
}

func TestResolveStoreFailureHidesInternals(t *testing.T) {
	r := resolver.New(downStore{})

	_, err := r.Resolve(context.Background(), resolver.IntentAllInvoices, 0, false)
	require.Error(t, err)
	assert.Equal(t, "invoice backend unavailable, please try again", common.UserMessage(err))
	assert.Contains(t, err.Error(), "disk I/O error")
}

func TestRunClassifiesAndResolves(t *testing.T) {
	store := testutil.SetupTestStore(t)
	testutil.SeedInvoices(t, store,
		testutil.Invoice("205", 1500, 270, "Delhi", "Delhi"),
	)

	r := resolver.New(store)
	rows, err := r.Run(context.Background(), "show invoice 205")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "205", rows[0]["invoice_no"])
}
