package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gstmind/gstmind/internal/model"
)

// FormatResponse renders a query response for the terminal.
func FormatResponse(resp model.QueryResponse) string {
	switch resp.Kind {
	case model.ResponseRows:
		return formatRows(resp.Rows)
	case model.ResponseRAG:
		return formatRAG(resp.RAG)
	case model.ResponseCalculation:
		return formatCalculation(resp.Calculation)
	case model.ResponseError:
		return FormatError(resp.ErrMessage)
	default:
		return FormatError("empty response")
	}
}

func formatRows(rows []model.Row) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("(no matching invoices)")
	}

	var b strings.Builder
	for i, row := range rows {
		columns := make([]string, 0, len(row))
		for col := range row {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		pairs := make([]string, 0, len(columns))
		for _, col := range columns {
			pairs = append(pairs, fmt.Sprintf("%s=%v", col, row[col]))
		}
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.Join(pairs, "  ")))
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatRAG(rag *model.RAGAnswer) string {
	if rag == nil {
		return FormatError("empty response")
	}

	var b strings.Builder
	b.WriteString(AnswerStyle.Render(rag.Answer))
	if len(rag.Passages) > 0 {
		b.WriteString("\n\n")
		b.WriteString(SubtleStyle.Render("Sources:"))
		for i, passage := range rag.Passages {
			b.WriteString("\n")
			b.WriteString(SubtleStyle.Render(fmt.Sprintf("  [%d] %s", i+1, firstLine(passage))))
		}
	}
	return b.String()
}

func formatCalculation(result *model.CalculationResult) string {
	if result == nil {
		return FormatError("empty response")
	}

	bd := result.Breakdown
	var b strings.Builder
	b.WriteString(FormatSuccess(fmt.Sprintf("GST calculated for invoice %d", result.InvoiceID)))
	b.WriteString(fmt.Sprintf("\n  Taxable value: %.2f", bd.TaxableValue))
	b.WriteString(fmt.Sprintf("\n  Rate:          %.2f%%", bd.RatePercent))
	b.WriteString(fmt.Sprintf("\n  Tax amount:    %.2f", bd.TaxAmount))
	if bd.IGST > 0 {
		b.WriteString(fmt.Sprintf("\n  IGST:          %.2f", bd.IGST))
	} else {
		b.WriteString(fmt.Sprintf("\n  CGST:          %.2f", bd.CGST))
		b.WriteString(fmt.Sprintf("\n  SGST:          %.2f", bd.SGST))
	}
	b.WriteString(fmt.Sprintf("\n  Total payable: %.2f", bd.TotalPayable))
	return b.String()
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	const maxLen = 80
	if runes := []rune(text); len(runes) > maxLen {
		text = string(runes[:maxLen]) + "..."
	}
	return text
}
