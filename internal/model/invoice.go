// Package model defines the core data types shared across the application.
package model

import "strings"

// TransactionType classifies an invoice by how its jurisdictions relate.
type TransactionType string

// Transaction types derived from the supplier and buyer jurisdictions.
const (
	TransactionIntraState TransactionType = "Intra-state"
	TransactionInterState TransactionType = "Inter-state"
	TransactionUnknown    TransactionType = "Unknown"
)

// LineItem is a single billed line on an invoice.
type LineItem struct {
	Description string
	Amount      float64
}

// InvoiceRecord represents one tax invoice as ingested from a source file.
// InvoiceNo is immutable once assigned. TransactionType is always derived
// from the two jurisdiction fields, never supplied by the source.
type InvoiceRecord struct {
	InvoiceNo       string
	SupplierState   string
	BuyerState      string
	TransactionType TransactionType
	Items           []LineItem
	TotalAmount     float64
	TaxAmount       float64
}

// ItemsTotal sums the line-item amounts.
func (r *InvoiceRecord) ItemsTotal() float64 {
	var sum float64
	for _, item := range r.Items {
		sum += item.Amount
	}
	return sum
}

// DeriveTransactionType recomputes the transaction type from the current
// jurisdiction fields. Comparison is case-insensitive; a missing
// jurisdiction on either side yields TransactionUnknown.
func DeriveTransactionType(supplierState, buyerState string) TransactionType {
	supplier := strings.ToLower(strings.TrimSpace(supplierState))
	buyer := strings.ToLower(strings.TrimSpace(buyerState))

	if supplier == "" || buyer == "" {
		return TransactionUnknown
	}
	if supplier == buyer {
		return TransactionIntraState
	}
	return TransactionInterState
}
