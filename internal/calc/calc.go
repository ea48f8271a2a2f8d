// Package calc computes GST breakdowns. Calculate is a pure function;
// input validation is the caller's responsibility.
package calc

import "github.com/gstmind/gstmind/internal/model"

// Calculate computes the tax breakdown for a taxable amount at the given
// percentage rate. Inter-state transactions attribute the whole tax to
// IGST; intra-state splits it evenly between CGST and SGST.
func Calculate(amount, ratePercent float64, interstate bool) model.TaxBreakdown {
	tax := amount * ratePercent / 100

	breakdown := model.TaxBreakdown{
		TaxableValue: amount,
		RatePercent:  ratePercent,
		TaxAmount:    tax,
		TotalPayable: amount + tax,
	}

	if interstate {
		breakdown.IGST = tax
	} else {
		breakdown.CGST = tax / 2
		breakdown.SGST = tax / 2
	}

	return breakdown
}
