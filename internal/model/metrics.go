package model

// MonthlyQuotes is one month bucket of the dashboard chart. Month is a
// pt-BR short label like "jan 25".
type MonthlyQuotes struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// QuoteMetrics is the derived dashboard summary. It is recomputed on demand
// and never persisted.
type QuoteMetrics struct {
	TotalQuotes              int             `json:"totalQuotes"`
	QuotesByMonth            []MonthlyQuotes `json:"quotesByMonth"`
	ConversionRate           float64         `json:"conversionRate"`
	EstimatedRevenue         float64         `json:"estimatedRevenue"`
	EstimatedConversions     int             `json:"estimatedConversions"`
	QuotesByService          map[string]int  `json:"quotesByService"`
	QuotesByUrgency          map[string]int  `json:"quotesByUrgency"`
	AverageResponseTimeHours float64         `json:"averageResponseTime"`
}
