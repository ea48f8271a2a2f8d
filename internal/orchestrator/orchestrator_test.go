package orchestrator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/orchestrator"
	"github.com/gstmind/gstmind/internal/resolver"
	"github.com/gstmind/gstmind/internal/testutil"
)

// stubRetriever returns canned passages.
type stubRetriever struct {
	passages []string
}

func (s *stubRetriever) Retrieve(_ string, topK int) []string {
	if topK < len(s.passages) {
		return s.passages[:topK]
	}
	return s.passages
}

// stubComposer echoes the first passage.
type stubComposer struct {
	calls int
}

func (s *stubComposer) Compose(_ context.Context, _ string, passages []string) string {
	s.calls++
	if len(passages) == 0 {
		return "no passages"
	}
	return "answer: " + passages[0]
}

func newOrchestrator(t *testing.T, invoices ...model.InvoiceRecord) (*orchestrator.Orchestrator, *stubComposer) {
	t.Helper()

	store := testutil.SetupTestStore(t)
	testutil.SeedInvoices(t, store, invoices...)

	retr := &stubRetriever{passages: []string{
		"GST rate for books is 5 percent.",
		"Interstate supplies attract IGST.",
	}}
	comp := &stubComposer{}
	return orchestrator.New(resolver.New(store), retr, comp), comp
}

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  orchestrator.Route
	}{
		{"calculation", "calculate 18% gst on invoice 101", orchestrator.RouteCalculation},
		{"rag rate question", "what is the gst rate for books", orchestrator.RouteRAG},
		{"sql invoice lookup", "show invoice 205", orchestrator.RouteSQL},
		{"invoice without digits is not sql", "explain the invoice rules", orchestrator.RouteRAG},
		{"default falls back to rag", "hello there", orchestrator.RouteRAG},
		{"slab keyword", "which slab applies to cement", orchestrator.RouteRAG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orchestrator.ClassifyQuery(tt.query))
		})
	}
}

func TestExtractRate(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"integer rate", "calculate 12% gst on invoice 101", 12},
		{"decimal rate", "calculate 12.5% on invoice 101", 12.5},
		{"no rate defaults", "calculate gst on invoice 101", orchestrator.DefaultRatePercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orchestrator.ExtractRate(tt.query))
		})
	}
}

func TestRunStructuredPath(t *testing.T) {
	o, _ := newOrchestrator(t,
		testutil.Invoice("205", 1500, 270, "Delhi", "Delhi"),
	)

	resp := o.Run(context.Background(), "show invoice 205")

	require.Equal(t, model.ResponseRows, resp.Kind)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "205", resp.Rows[0]["invoice_no"])
}

func TestRunRAGPath(t *testing.T) {
	o, comp := newOrchestrator(t)

	resp := o.Run(context.Background(), "what is the gst rate for books")

	require.Equal(t, model.ResponseRAG, resp.Kind)
	require.NotNil(t, resp.RAG)
	assert.Equal(t, "what is the gst rate for books", resp.RAG.Query)
	assert.Len(t, resp.RAG.Passages, orchestrator.DefaultTopK)
	assert.Contains(t, resp.RAG.Answer, "books")
	assert.Equal(t, 1, comp.calls)
}

func TestRunCalculationPath(t *testing.T) {
	o, _ := newOrchestrator(t,
		testutil.Invoice("101", 5000, 900, "Delhi", "Karnataka"),
	)

	resp := o.Run(context.Background(), "calculate gst on invoice 101 at 18%")

	require.Equal(t, model.ResponseCalculation, resp.Kind)
	require.NotNil(t, resp.Calculation)
	assert.Equal(t, 101, resp.Calculation.InvoiceID)
	assert.InDelta(t, 900.0, resp.Calculation.Breakdown.TaxAmount, 1e-9)
	assert.InDelta(t, 5900.0, resp.Calculation.Breakdown.TotalPayable, 1e-9)
	// The jurisdiction flag is the documented fixed default: intra-state split.
	assert.InDelta(t, 450.0, resp.Calculation.Breakdown.CGST, 1e-9)
	assert.InDelta(t, 450.0, resp.Calculation.Breakdown.SGST, 1e-9)
	assert.Zero(t, resp.Calculation.Breakdown.IGST)
}

func TestRunCalculationDefaultRate(t *testing.T) {
	o, _ := newOrchestrator(t,
		testutil.Invoice("101", 1000, 180, "Delhi", "Delhi"),
	)

	resp := o.Run(context.Background(), "calculate gst on invoice 101")

	require.Equal(t, model.ResponseCalculation, resp.Kind)
	assert.Equal(t, orchestrator.DefaultRatePercent, resp.Calculation.Breakdown.RatePercent)
	assert.InDelta(t, 180.0, resp.Calculation.Breakdown.TaxAmount, 1e-9)
}

func TestRunCalculationFirstDigitRunIsTheInvoiceID(t *testing.T) {
	o, _ := newOrchestrator(t,
		testutil.Invoice("18", 200, 36, "Delhi", "Delhi"),
		testutil.Invoice("101", 5000, 900, "Delhi", "Delhi"),
	)

	// "18" appears before "101", so the rate literal doubles as the
	// lookup key.
	resp := o.Run(context.Background(), "calculate 18% gst on invoice 101")

	require.Equal(t, model.ResponseCalculation, resp.Kind)
	require.NotNil(t, resp.Calculation)
	assert.Equal(t, 18, resp.Calculation.InvoiceID)
	assert.InDelta(t, 36.0, resp.Calculation.Breakdown.TaxAmount, 1e-9)
}

func TestRunCalculationRateFirstPhrasingMissesLaterID(t *testing.T) {
	o, _ := newOrchestrator(t,
		testutil.Invoice("101", 5000, 900, "Delhi", "Karnataka"),
	)

	resp := o.Run(context.Background(), "calculate 18% gst on invoice 101")

	require.Equal(t, model.ResponseError, resp.Kind)
	assert.Contains(t, resp.ErrMessage, "invoice 18 not found")
}

func TestRunCalculationNoInvoiceID(t *testing.T) {
	o, _ := newOrchestrator(t)

	resp := o.Run(context.Background(), "calculate the tax please")

	require.Equal(t, model.ResponseError, resp.Kind)
	assert.Contains(t, resp.ErrMessage, "could not identify invoice")
	assert.Nil(t, resp.Calculation)
}

func TestRunCalculationInvoiceNotFound(t *testing.T) {
	o, _ := newOrchestrator(t)

	resp := o.Run(context.Background(), "calculate gst on invoice 999 at 18%")

	require.Equal(t, model.ResponseError, resp.Kind)
	assert.Contains(t, resp.ErrMessage, "invoice 999 not found")
}

func TestRunStructuredEmptyResultIsNotAnError(t *testing.T) {
	o, _ := newOrchestrator(t)

	resp := o.Run(context.Background(), "tax on invoice 404")
	require.Equal(t, model.ResponseRows, resp.Kind)
	assert.Empty(t, resp.Rows)
}

// failingStore simulates an unreachable structured store.
type failingStore struct{}

func (failingStore) Execute(_ context.Context, _ string, _ ...any) ([]model.Row, error) {
	return nil, common.ErrBackendUnavailable
}

func TestRunStructuredBackendUnavailable(t *testing.T) {
	retr := &stubRetriever{}
	o := orchestrator.New(resolver.New(failingStore{}), retr, &stubComposer{})

	resp := o.Run(context.Background(), "show invoice 205")

	require.Equal(t, model.ResponseError, resp.Kind)
	assert.Contains(t, resp.ErrMessage, "backend unavailable")
}

func TestRunCalculationBackendUnavailable(t *testing.T) {
	retr := &stubRetriever{}
	o := orchestrator.New(resolver.New(failingStore{}), retr, &stubComposer{})

	resp := o.Run(context.Background(), "calculate gst on invoice 101 at 18%")

	require.Equal(t, model.ResponseError, resp.Kind)
	assert.Contains(t, resp.ErrMessage, "invoice 101 not found")
}
