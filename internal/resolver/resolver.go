package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
)

// sqlTemplates maps each supported intent to its fixed query shape.
// Templates containing a placeholder require a resolvable invoice ID.
var sqlTemplates = map[IntentLabel]string{
	IntentInvoiceByID: "SELECT * FROM invoices WHERE invoice_no = ?",
	IntentTotalAmount: "SELECT total_amount FROM invoices WHERE invoice_no = ?",
	IntentTaxAmount:   "SELECT tax_amount FROM invoices WHERE invoice_no = ?",
	IntentInterstate:  "SELECT * FROM invoices WHERE supplier_state != buyer_state",
	IntentAllInvoices: "SELECT * FROM invoices",
}

// Executor is the single operation the resolver needs from the
// structured store.
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) ([]model.Row, error)
}

// Resolver turns classified intents into store lookups.
type Resolver struct {
	store Executor
}

// New creates a resolver over the given store.
func New(store Executor) *Resolver {
	return &Resolver{store: store}
}

// Resolve executes the query shape for an intent. hasID reports whether
// an invoice ID was resolvable from the source text; parameterized
// shapes fail without one.
func (r *Resolver) Resolve(ctx context.Context, intent IntentLabel, invoiceID int, hasID bool) ([]model.Row, error) {
	query, ok := sqlTemplates[intent]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedIntent, intent)
	}

	var args []any
	if strings.Contains(query, "?") {
		if !hasID {
			return nil, common.ErrMissingInvoiceID
		}
		args = append(args, strconv.Itoa(invoiceID))
	}

	rows, err := r.store.Execute(ctx, query, args...)
	if err != nil {
		return nil, common.NewUserError(
			fmt.Errorf("structured lookup failed: %w", err),
			"invoice backend unavailable, please try again")
	}

	slog.Debug("resolved structured query",
		"intent", intent,
		"rows", len(rows))

	return rows, nil
}

// Run classifies free text and resolves it in one step.
func (r *Resolver) Run(ctx context.Context, text string) ([]model.Row, error) {
	intent := Classify(text)
	invoiceID, hasID := ExtractInvoiceID(text)
	return r.Resolve(ctx, intent, invoiceID, hasID)
}
