// Package pipeline implements the invoice cleaning pipeline: a fixed
// sequence of pure stages that validate and normalize a raw invoice
// record before it is persisted.
package pipeline

import (
	"github.com/gstmind/gstmind/internal/model"
)

// Result carries an invoice record through the pipeline together with
// its validity status and an append-only log trail. Invalidity is state,
// not an error: once Valid is false the remaining stages pass the
// result through unchanged.
type Result struct {
	Err    string
	Logs   []string
	Record model.InvoiceRecord
	Valid  bool
}

// Stage is a pure function from one pipeline result to the next.
type Stage func(Result) Result

// Pipeline folds an invoice record through its stages in order.
type Pipeline struct {
	stages []Stage
}

// New creates the standard three-stage cleaning pipeline:
// required-field check, amount reconciliation, normalization.
func New() *Pipeline {
	return &Pipeline{
		stages: []Stage{
			CheckRequiredFields,
			ReconcileAmounts,
			Normalize,
		},
	}
}

// Run passes a record through every stage and returns the final result.
func (p *Pipeline) Run(record model.InvoiceRecord) Result {
	result := Result{
		Record: record,
		Valid:  true,
		Logs:   []string{},
	}
	for _, stage := range p.stages {
		result = stage(result)
	}
	return result
}
