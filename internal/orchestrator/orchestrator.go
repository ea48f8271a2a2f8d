// Package orchestrator routes each incoming query to the resolver that
// can satisfy it and assembles the final response, including the
// multi-step hybrid calculation path.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/gstmind/gstmind/internal/calc"
	"github.com/gstmind/gstmind/internal/common"
	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/resolver"
)

// DefaultTopK is how many rule passages the RAG path retrieves.
const DefaultTopK = 2

// DefaultRatePercent applies when a calculation query names no rate.
const DefaultRatePercent = 18.0

// StructuredResolver is the structured-lookup collaborator.
type StructuredResolver interface {
	Run(ctx context.Context, text string) ([]model.Row, error)
	Resolve(ctx context.Context, intent resolver.IntentLabel, invoiceID int, hasID bool) ([]model.Row, error)
}

// Retriever is the semantic-lookup collaborator.
type Retriever interface {
	Retrieve(query string, topK int) []string
}

// Composer turns retrieved passages into an answer.
type Composer interface {
	Compose(ctx context.Context, query string, passages []string) string
}

// Orchestrator dispatches queries across its collaborators. It holds no
// mutable state, so concurrent calls are independent.
type Orchestrator struct {
	resolver  StructuredResolver
	retriever Retriever
	composer  Composer
	topK      int
}

// New creates an orchestrator over the given collaborators.
func New(structured StructuredResolver, retriever Retriever, composer Composer) *Orchestrator {
	return NewWithTopK(structured, retriever, composer, DefaultTopK)
}

// NewWithTopK creates an orchestrator with a custom retrieval depth.
func NewWithTopK(structured StructuredResolver, retriever Retriever, composer Composer, topK int) *Orchestrator {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Orchestrator{
		resolver:  structured,
		retriever: retriever,
		composer:  composer,
		topK:      topK,
	}
}

// Run classifies the query, dispatches it, and assembles the response.
// Every failure path yields an explicit error variant, never a panic.
func (o *Orchestrator) Run(ctx context.Context, text string) model.QueryResponse {
	route := ClassifyQuery(text)
	slog.Debug("classified query", "route", route)

	switch route {
	case RouteSQL:
		return o.runStructured(ctx, text)
	case RouteRAG:
		return o.runRAG(ctx, text)
	case RouteCalculation:
		return o.runCalculation(ctx, text)
	default:
		// Unreachable behind the default-to-RAG rule, kept for the
		// sake of a total switch.
		return model.ErrorResponse("query not understood")
	}
}

func (o *Orchestrator) runStructured(ctx context.Context, text string) model.QueryResponse {
	rows, err := o.resolver.Run(ctx, text)
	if err != nil {
		common.LogError(err, "structured resolution failed", common.Fields{"query": text})
		return model.ErrorResponse(common.UserMessage(err))
	}
	return model.RowsResponse(rows)
}

func (o *Orchestrator) runRAG(ctx context.Context, text string) model.QueryResponse {
	passages := o.retriever.Retrieve(text, o.topK)
	answer := o.composer.Compose(ctx, text, passages)
	return model.RAGResponse(model.RAGAnswer{
		Query:    text,
		Passages: passages,
		Answer:   answer,
	})
}

// runCalculation executes the strictly ordered hybrid protocol:
// identify the invoice, look up its total, extract the rate, compute.
func (o *Orchestrator) runCalculation(ctx context.Context, text string) model.QueryResponse {
	invoiceID, ok := resolver.ExtractInvoiceID(text)
	if !ok {
		return model.ErrorResponse("could not identify invoice ID for calculation")
	}

	rows, err := o.resolver.Resolve(ctx, resolver.IntentTotalAmount, invoiceID, true)
	if err != nil || len(rows) == 0 {
		if err != nil {
			common.LogError(err, "invoice lookup failed", common.Fields{"invoice_id": invoiceID})
		}
		return model.ErrorResponse(fmt.Sprintf("invoice %d not found", invoiceID))
	}

	amount, ok := rowFloat(rows[0], "total_amount")
	if !ok {
		return model.ErrorResponse(fmt.Sprintf("invoice %d has no usable total amount", invoiceID))
	}

	rate := ExtractRate(text)

	// Known simplification: the jurisdiction-crossing flag defaults to
	// false instead of being threaded from the resolved row.
	const interstate = false

	breakdown := calc.Calculate(amount, rate, interstate)
	return model.CalculationResponse(model.CalculationResult{
		InvoiceID: invoiceID,
		Breakdown: breakdown,
	})
}

// rowFloat reads a numeric column from a store row, tolerating the
// driver's possible representations.
func rowFloat(row model.Row, column string) (float64, bool) {
	switch v := row[column].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
