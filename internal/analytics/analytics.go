// Package analytics reduces quote records into the dashboard summary.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hsadv/quotes-service/internal/model"
	"github.com/hsadv/quotes-service/internal/pricing"
)

const (
	// conversionRate is a business placeholder, not derived from data.
	conversionRate = 0.3

	// averageResponseTimeHours is a static placeholder as well.
	averageResponseTimeHours = 12
)

// pt-BR short month names, index time.Month-1.
var monthShort = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// ComputeMetrics summarizes quotes created within the trailing periodDays
// window ending now.
func ComputeMetrics(quotes []model.Quote, periodDays int) model.QuoteMetrics {
	return ComputeMetricsAt(quotes, periodDays, time.Now())
}

// ComputeMetricsAt is ComputeMetrics with an explicit reference instant. It
// is pure: identical inputs always produce identical output.
func ComputeMetricsAt(quotes []model.Quote, periodDays int, now time.Time) model.QuoteMetrics {
	periodStart := now.Add(-time.Duration(periodDays) * 24 * time.Hour)

	// Both window bounds are inclusive. A zero CreatedAt always falls
	// before the window start, so such records never count anywhere.
	period := make([]model.Quote, 0, len(quotes))
	for _, quote := range quotes {
		if quote.CreatedAt.Before(periodStart) || quote.CreatedAt.After(now) {
			continue
		}
		period = append(period, quote)
	}

	totalQuotes := len(period)

	type bucket struct {
		count   int
		revenue float64
	}
	buckets := make(map[string]*bucket)
	var keyOrder []string

	estimatedRevenue := 0.0
	quotesByService := make(map[string]int)
	quotesByUrgency := make(map[string]int)

	for _, quote := range period {
		estimated := pricing.Estimate(string(quote.ServiceType), stringValue(quote.ServiceLevel))
		estimatedRevenue += estimated

		key := monthKey(quote.CreatedAt)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
			keyOrder = append(keyOrder, key)
		}
		b.count++
		b.revenue += estimated

		quotesByService[string(quote.ServiceType)]++
		quotesByUrgency[string(quote.Urgency)]++
	}

	quotesByMonth := make([]model.MonthlyQuotes, 0, len(keyOrder))
	for _, key := range keyOrder {
		quotesByMonth = append(quotesByMonth, model.MonthlyQuotes{
			Month:   key,
			Count:   buckets[key].count,
			Revenue: buckets[key].revenue,
		})
	}
	// Ascending by the first-of-month date implied by the label. The stable
	// sort keeps insertion order on ties: labels carry a 2-digit year, so a
	// collision across centuries is a known ambiguity we do not resolve.
	sort.SliceStable(quotesByMonth, func(i, j int) bool {
		return parseMonthKey(quotesByMonth[i].Month).Before(parseMonthKey(quotesByMonth[j].Month))
	})

	return model.QuoteMetrics{
		TotalQuotes:              totalQuotes,
		QuotesByMonth:            quotesByMonth,
		ConversionRate:           conversionRate,
		EstimatedRevenue:         estimatedRevenue,
		EstimatedConversions:     int(math.Ceil(float64(totalQuotes) * conversionRate)),
		QuotesByService:          quotesByService,
		QuotesByUrgency:          quotesByUrgency,
		AverageResponseTimeHours: averageResponseTimeHours,
	}
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%s %02d", monthShort[t.Month()-1], t.Year()%100)
}

func parseMonthKey(key string) time.Time {
	parts := strings.SplitN(key, " ", 2)
	if len(parts) != 2 {
		return time.Time{}
	}
	month := 0
	for i, name := range monthShort {
		if parts[0] == name {
			month = i + 1
			break
		}
	}
	year, err := strconv.Atoi(parts[1])
	if month == 0 || err != nil {
		return time.Time{}
	}
	return time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
