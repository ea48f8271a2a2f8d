// Package resolver maps free-text invoice questions onto a fixed set of
// parameterized lookups against the structured store.
package resolver

import (
	"regexp"
	"strconv"
	"strings"
)

// IntentLabel is the closed set of structured-lookup intents.
type IntentLabel string

// Recognized intents.
const (
	IntentInvoiceByID IntentLabel = "GET_INVOICE_BY_ID"
	IntentTotalAmount IntentLabel = "GET_TOTAL_AMOUNT"
	IntentTaxAmount   IntentLabel = "GET_TAX_AMOUNT"
	IntentInterstate  IntentLabel = "GET_INTERSTATE_INVOICES"
	IntentAllInvoices IntentLabel = "GET_ALL_INVOICES"
	IntentUnknown     IntentLabel = "UNKNOWN"
)

// intentRule pairs a predicate with the intent it selects.
type intentRule struct {
	match func(string) bool
	label IntentLabel
}

// intentRules is evaluated top to bottom, first match wins. The order is
// the tie-break policy: more specific intents sit above more general
// ones ("total amount of invoice 101" must not resolve as a plain
// by-id lookup).
var intentRules = []intentRule{
	{
		label: IntentInterstate,
		match: func(q string) bool { return strings.Contains(q, "interstate") },
	},
	{
		label: IntentTotalAmount,
		match: func(q string) bool {
			return strings.Contains(q, "total") && strings.Contains(q, "invoice")
		},
	},
	{
		label: IntentTaxAmount,
		match: func(q string) bool {
			return strings.Contains(q, "tax") || strings.Contains(q, "gst")
		},
	},
	{
		label: IntentInvoiceByID,
		match: func(q string) bool { return strings.Contains(q, "invoice") },
	},
}

// Classify maps a query onto an intent via the ordered rule list.
func Classify(text string) IntentLabel {
	q := strings.ToLower(text)
	for _, rule := range intentRules {
		if rule.match(q) {
			return rule.label
		}
	}
	return IntentUnknown
}

var invoiceIDPattern = regexp.MustCompile(`\d+`)

// ExtractInvoiceID returns the first run of digits found anywhere in the
// text. Later digit runs are ignored: first match is the policy.
func ExtractInvoiceID(text string) (int, bool) {
	match := invoiceIDPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	id, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return id, true
}
