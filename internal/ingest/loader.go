package ingest

import (
	"context"
	"log/slog"

	"github.com/gstmind/gstmind/internal/model"
	"github.com/gstmind/gstmind/internal/pipeline"
)

// InvoiceWriter is the persistence operation the loader needs.
type InvoiceWriter interface {
	InsertInvoice(ctx context.Context, record model.InvoiceRecord) (bool, error)
}

// Report summarizes one ingestion run.
type Report struct {
	Total     int
	Inserted  int
	Duplicate int
	Invalid   int
	Failed    int
}

// Loader drives records through the cleaning pipeline into the store.
type Loader struct {
	pipeline *pipeline.Pipeline
	store    InvoiceWriter
}

// NewLoader creates a loader over the given store.
func NewLoader(store InvoiceWriter) *Loader {
	return &Loader{
		pipeline: pipeline.New(),
		store:    store,
	}
}

// Run cleans and persists each record. Invalid records are skipped with
// their log trail; store failures on one record do not stop the rest.
// onRecord, when non-nil, is called after each record for progress
// reporting.
func (l *Loader) Run(ctx context.Context, records []model.InvoiceRecord, onRecord func()) Report {
	report := Report{Total: len(records)}

	for _, record := range records {
		result := l.pipeline.Run(record)

		switch {
		case !result.Valid:
			report.Invalid++
			slog.Warn("skipping invalid record",
				"invoice_no", record.InvoiceNo,
				"reason", result.Err,
				"trail", result.Logs)
		default:
			inserted, err := l.store.InsertInvoice(ctx, result.Record)
			switch {
			case err != nil:
				report.Failed++
				slog.Error("failed to persist record",
					"invoice_no", record.InvoiceNo,
					"error", err)
			case inserted:
				report.Inserted++
			default:
				report.Duplicate++
			}
		}

		if onRecord != nil {
			onRecord()
		}
	}

	return report
}
