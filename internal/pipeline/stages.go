package pipeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/gstmind/gstmind/internal/model"
)

// amountTolerance is the absolute tolerance, in currency units, allowed
// between the declared invoice total and the sum of its line items.
const amountTolerance = 1.0

// CheckRequiredFields marks the result invalid when the invoice number,
// total amount, or line items are missing or empty. Invalidity is
// recorded as state; nothing is raised.
func CheckRequiredFields(result Result) Result {
	var missing []string
	if strings.TrimSpace(result.Record.InvoiceNo) == "" {
		missing = append(missing, "invoice_no")
	}
	if result.Record.TotalAmount == 0 {
		missing = append(missing, "total_amount")
	}
	if len(result.Record.Items) == 0 {
		missing = append(missing, "items")
	}

	if len(missing) > 0 {
		result.Valid = false
		result.Err = fmt.Sprintf("missing fields: %s", strings.Join(missing, ", "))
		result.Logs = append(result.Logs,
			fmt.Sprintf("field validation failed: missing %s", strings.Join(missing, ", ")))
		return result
	}

	result.Logs = append(result.Logs, "field validation passed")
	return result
}

// ReconcileAmounts cross-checks the declared total against the summed
// line items. A mismatch beyond the tolerance is a warning, never an
// invalidation; a non-numeric amount is logged as a distinct warning.
func ReconcileAmounts(result Result) Result {
	if !result.Valid {
		return result
	}

	itemsTotal := result.Record.ItemsTotal()
	invoiceTotal := result.Record.TotalAmount

	if isBadNumber(itemsTotal) || isBadNumber(invoiceTotal) {
		result.Logs = append(result.Logs,
			fmt.Sprintf("amount validation error: non-numeric amount (items=%v, total=%v)",
				itemsTotal, invoiceTotal))
		return result
	}

	if math.Abs(itemsTotal-invoiceTotal) > amountTolerance {
		result.Logs = append(result.Logs,
			fmt.Sprintf("amount mismatch warning: items(%.2f) != total(%.2f)",
				itemsTotal, invoiceTotal))
		return result
	}

	result.Logs = append(result.Logs, "amount validation passed")
	return result
}

// Normalize derives the transaction type from the supplier and buyer
// jurisdictions and writes it back into the record. Re-running it on an
// already-normalized record is a pure function of the two jurisdiction
// fields.
func Normalize(result Result) Result {
	if !result.Valid {
		return result
	}

	derived := model.DeriveTransactionType(
		result.Record.SupplierState,
		result.Record.BuyerState,
	)
	result.Record.TransactionType = derived
	result.Logs = append(result.Logs,
		fmt.Sprintf("normalized transaction type: %s", derived))
	return result
}

func isBadNumber(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
