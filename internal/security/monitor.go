// Package security keeps a bounded in-memory log of security-related
// events for the admin dashboard.
package security

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type EventType string

const (
	EventRateLimitExceeded  EventType = "RATE_LIMIT_EXCEEDED"
	EventUnauthorizedAccess EventType = "UNAUTHORIZED_ACCESS"
	EventSuspiciousRequest  EventType = "SUSPICIOUS_REQUEST"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Type      EventType         `json:"type"`
	IP        string            `json:"ip"`
	UserAgent string            `json:"userAgent"`
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Severity  Severity          `json:"severity"`
	Details   map[string]string `json:"details,omitempty"`
}

type IPCount struct {
	IP    string `json:"ip"`
	Count int    `json:"count"`
}

type Statistics struct {
	TotalEvents       int            `json:"totalEvents"`
	RecentEvents      int            `json:"recentEventsLastHour"`
	EventsByType      map[string]int `json:"eventsByType"`
	EventsBySeverity  map[string]int `json:"eventsBySeverity"`
	UniqueIPsLastHour int            `json:"uniqueIPsLastHour"`
	TopThreats        []IPCount      `json:"topThreats"`
}

// Monitor is an explicitly constructed, injected event store. It keeps the
// last maxEvents entries; older ones are dropped.
type Monitor struct {
	mu     sync.Mutex
	events []Event
	max    int
	log    zerolog.Logger
	now    func() time.Time

	alertPerIP  int
	alertWindow time.Duration
}

func NewMonitor(log zerolog.Logger) *Monitor {
	return &Monitor{
		max:         1000,
		log:         log.With().Str("component", "security").Logger(),
		now:         time.Now,
		alertPerIP:  10,
		alertWindow: time.Hour,
	}
}

// Record stores an event, stamps it and logs it at a level matching its
// severity. Repeated rate-limit violations from one IP raise an alert log.
func (m *Monitor) Record(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	event.Timestamp = m.now()
	m.events = append(m.events, event)
	if len(m.events) > m.max {
		m.events = m.events[len(m.events)-m.max:]
	}

	entry := m.log.Warn()
	switch event.Severity {
	case SeverityLow:
		entry = m.log.Info()
	case SeverityHigh, SeverityCritical:
		entry = m.log.Error()
	}
	entry.
		Str("type", string(event.Type)).
		Str("severity", string(event.Severity)).
		Str("ip", event.IP).
		Str("url", event.URL).
		Msg("security event")

	if event.Type == EventRateLimitExceeded {
		m.checkRateLimitAbuse(event.IP)
	}
}

func (m *Monitor) checkRateLimitAbuse(ip string) {
	cutoff := m.now().Add(-m.alertWindow)
	count := 0
	for _, e := range m.events {
		if e.IP == ip && e.Type == EventRateLimitExceeded && e.Timestamp.After(cutoff) {
			count++
		}
	}
	if count >= m.alertPerIP {
		m.log.Error().
			Str("ip", ip).
			Int("violations", count).
			Msg("possible brute force attack")
	}
}

// Recent returns the newest events first, optionally filtered by type.
func (m *Monitor) Recent(limit int, eventType EventType) []Event {
	if limit <= 0 {
		limit = 50
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Event, 0, limit)
	for i := len(m.events) - 1; i >= 0 && len(result) < limit; i-- {
		if eventType != "" && m.events[i].Type != eventType {
			continue
		}
		result = append(result, m.events[i])
	}
	return result
}

// Statistics summarizes the last hour of activity.
func (m *Monitor) Statistics() Statistics {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-time.Hour)
	byType := make(map[string]int)
	bySeverity := make(map[string]int)
	byIP := make(map[string]int)
	recent := 0

	for _, e := range m.events {
		if !e.Timestamp.After(cutoff) {
			continue
		}
		recent++
		byType[string(e.Type)]++
		bySeverity[string(e.Severity)]++
		byIP[e.IP]++
	}

	return Statistics{
		TotalEvents:       len(m.events),
		RecentEvents:      recent,
		EventsByType:      byType,
		EventsBySeverity:  bySeverity,
		UniqueIPsLastHour: len(byIP),
		TopThreats:        topThreats(byIP, 5),
	}
}

func topThreats(byIP map[string]int, limit int) []IPCount {
	threats := make([]IPCount, 0, len(byIP))
	for ip, count := range byIP {
		threats = append(threats, IPCount{IP: ip, Count: count})
	}
	sort.Slice(threats, func(i, j int) bool { return threats[i].Count > threats[j].Count })
	if len(threats) > limit {
		threats = threats[:limit]
	}
	return threats
}
