package orchestrator

import (
	"regexp"
	"strconv"
	"strings"
)

// Route is the coarse category a query is dispatched under.
type Route string

// Routes.
const (
	RouteCalculation Route = "CALCULATION"
	RouteSQL         Route = "SQL_AGENT"
	RouteRAG         Route = "RAG_AGENT"
	RouteUnknown     Route = "UNKNOWN"
)

// routeRule pairs a predicate with the route it selects.
type routeRule struct {
	match func(string) bool
	route Route
}

var containsDigit = regexp.MustCompile(`\d`)

// routeRules is evaluated top to bottom, first match wins. "calculate"
// outranks everything so hybrid queries naming an invoice do not fall
// into the plain structured path.
var routeRules = []routeRule{
	{
		route: RouteCalculation,
		match: func(q string) bool { return strings.Contains(q, "calculate") },
	},
	{
		route: RouteSQL,
		match: func(q string) bool {
			return strings.Contains(q, "invoice") && containsDigit.MatchString(q)
		},
	},
	{
		route: RouteRAG,
		match: func(q string) bool {
			return strings.Contains(q, "rate") ||
				strings.Contains(q, "slab") ||
				strings.Contains(q, "rule") ||
				strings.Contains(q, "what is")
		},
	},
}

// ClassifyQuery maps a query onto a route. Queries matching no rule
// default to the RAG path: general knowledge is the explicit fallback,
// which leaves RouteUnknown defined but unreachable.
func ClassifyQuery(text string) Route {
	q := strings.ToLower(text)
	for _, rule := range routeRules {
		if rule.match(q) {
			return rule.route
		}
	}
	return RouteRAG
}

var ratePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)

// ExtractRate finds a percentage literal in the text, falling back to
// the default rate when none is present.
func ExtractRate(text string) float64 {
	match := ratePattern.FindStringSubmatch(text)
	if match == nil {
		return DefaultRatePercent
	}
	rate, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return DefaultRatePercent
	}
	return rate
}
