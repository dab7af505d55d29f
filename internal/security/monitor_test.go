package security

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsadv/quotes-service/internal/logger"
)

func newTestMonitor(now func() time.Time) *Monitor {
	m := NewMonitor(logger.New("test"))
	if now != nil {
		m.now = now
	}
	return m
}

func TestRecordStampsAndStores(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestMonitor(func() time.Time { return fixed })

	m.Record(Event{
		Type:     EventUnauthorizedAccess,
		IP:       "10.0.0.1",
		URL:      "/api/quotes/recent",
		Method:   "GET",
		Severity: SeverityMedium,
	})

	events := m.Recent(0, "")
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
	assert.Equal(t, EventUnauthorizedAccess, events[0].Type)
}

func TestRecordDropsOldestBeyondCapacity(t *testing.T) {
	m := newTestMonitor(nil)

	for i := 0; i < 1005; i++ {
		m.Record(Event{
			Type:     EventSuspiciousRequest,
			IP:       fmt.Sprintf("10.0.0.%d", i),
			Severity: SeverityLow,
		})
	}

	stats := m.Statistics()
	assert.Equal(t, 1000, stats.TotalEvents)

	// The oldest five entries were evicted.
	all := m.Recent(1000, "")
	require.Len(t, all, 1000)
	assert.Equal(t, "10.0.0.1004", all[0].IP)
	assert.Equal(t, "10.0.0.5", all[len(all)-1].IP)
}

func TestRecentNewestFirstWithFilter(t *testing.T) {
	m := newTestMonitor(nil)

	m.Record(Event{Type: EventRateLimitExceeded, IP: "1.1.1.1", Severity: SeverityMedium})
	m.Record(Event{Type: EventUnauthorizedAccess, IP: "2.2.2.2", Severity: SeverityMedium})
	m.Record(Event{Type: EventRateLimitExceeded, IP: "3.3.3.3", Severity: SeverityMedium})

	filtered := m.Recent(10, EventRateLimitExceeded)
	require.Len(t, filtered, 2)
	assert.Equal(t, "3.3.3.3", filtered[0].IP)
	assert.Equal(t, "1.1.1.1", filtered[1].IP)
}

func TestRecentDefaultLimit(t *testing.T) {
	m := newTestMonitor(nil)
	for i := 0; i < 60; i++ {
		m.Record(Event{Type: EventSuspiciousRequest, IP: "1.1.1.1", Severity: SeverityLow})
	}
	assert.Len(t, m.Recent(0, ""), 50)
}

func TestStatisticsWindowAndTopThreats(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := newTestMonitor(func() time.Time { return current })

	// Two hours ago, outside the statistics window.
	current = current.Add(-2 * time.Hour)
	m.Record(Event{Type: EventSuspiciousRequest, IP: "9.9.9.9", Severity: SeverityLow})

	current = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		m.Record(Event{Type: EventRateLimitExceeded, IP: "1.1.1.1", Severity: SeverityMedium})
	}
	m.Record(Event{Type: EventUnauthorizedAccess, IP: "2.2.2.2", Severity: SeverityHigh})

	stats := m.Statistics()
	assert.Equal(t, 5, stats.TotalEvents)
	assert.Equal(t, 4, stats.RecentEvents)
	assert.Equal(t, 3, stats.EventsByType["RATE_LIMIT_EXCEEDED"])
	assert.Equal(t, 1, stats.EventsByType["UNAUTHORIZED_ACCESS"])
	assert.Equal(t, 2, stats.UniqueIPsLastHour)

	require.NotEmpty(t, stats.TopThreats)
	assert.Equal(t, "1.1.1.1", stats.TopThreats[0].IP)
	assert.Equal(t, 3, stats.TopThreats[0].Count)
}
