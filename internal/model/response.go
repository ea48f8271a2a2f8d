package model

// ResponseKind discriminates the variants of a QueryResponse.
type ResponseKind string

// Response kinds.
const (
	ResponseRows        ResponseKind = "rows"
	ResponseRAG         ResponseKind = "rag"
	ResponseCalculation ResponseKind = "calculation"
	ResponseError       ResponseKind = "error"
)

// Row is a single structured-store result row as column→value pairs.
type Row map[string]any

// RAGAnswer bundles a semantic-retrieval result: the original question,
// the passages it was answered from, and the composed answer text.
type RAGAnswer struct {
	Query    string
	Answer   string
	Passages []string
}

// TaxBreakdown is the result of a tax calculation. For inter-state
// transactions the whole tax lands in IGST; otherwise it is split evenly
// between CGST and SGST.
type TaxBreakdown struct {
	TaxableValue float64
	RatePercent  float64
	TaxAmount    float64
	TotalPayable float64
	IGST         float64
	CGST         float64
	SGST         float64
}

// CalculationResult tags a tax breakdown with the invoice it was
// computed for.
type CalculationResult struct {
	InvoiceID int
	Breakdown TaxBreakdown
}

// QueryResponse is the discriminated result of running one query.
// Exactly one variant matching Kind is populated.
type QueryResponse struct {
	Calculation *CalculationResult
	RAG         *RAGAnswer
	Kind        ResponseKind
	ErrMessage  string
	Rows        []Row
}

// RowsResponse wraps structured rows in a QueryResponse.
func RowsResponse(rows []Row) QueryResponse {
	return QueryResponse{Kind: ResponseRows, Rows: rows}
}

// RAGResponse wraps a retrieval answer in a QueryResponse.
func RAGResponse(answer RAGAnswer) QueryResponse {
	return QueryResponse{Kind: ResponseRAG, RAG: &answer}
}

// CalculationResponse wraps a calculation result in a QueryResponse.
func CalculationResponse(result CalculationResult) QueryResponse {
	return QueryResponse{Kind: ResponseCalculation, Calculation: &result}
}

// ErrorResponse wraps a human-readable failure message in a QueryResponse.
func ErrorResponse(message string) QueryResponse {
	return QueryResponse{Kind: ResponseError, ErrMessage: message}
}
