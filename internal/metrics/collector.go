// Package metrics provides a small in-process request metrics collector. All
// shared state lives in one struct guarded by a single mutex.
package metrics

import (
	"sort"
	"sync"
	"time"
)

const (
	maxRecentRequests    = 1000
	maxDurationsPerRoute = 100
	topEndpointCount     = 10
)

// RequestRecord is one observed request.
type RequestRecord struct {
	Timestamp  time.Time     `json:"timestamp"`
	Method     string        `json:"method"`
	Path       string        `json:"path"`
	StatusCode int           `json:"statusCode"`
	Duration   time.Duration `json:"duration"`
	UserID     string        `json:"userID,omitempty"`
}

type endpointMetrics struct {
	count         int
	totalDuration time.Duration
	errors        int
	lastAccessed  time.Time
}

// Collector accumulates request counters, latencies and daily active users.
type Collector struct {
	mu sync.Mutex

	requestCounts    map[string]int
	requestDurations map[string][]time.Duration
	errorCounts      map[string]int
	statusCodes      map[int]int
	endpoints        map[string]*endpointMetrics

	recentRequests []RequestRecord

	activeUsersToday map[string]struct{}
	activeUsersByDay map[string]map[string]struct{}
	lastResetDate    string

	now func() time.Time
}

// NewCollector returns an initialized Collector.
func NewCollector() *Collector {
	c := &Collector{now: time.Now}
	c.resetLocked()
	return c
}

func (c *Collector) resetLocked() {
	c.requestCounts = make(map[string]int)
	c.requestDurations = make(map[string][]time.Duration)
	c.errorCounts = make(map[string]int)
	c.statusCodes = make(map[int]int)
	c.endpoints = make(map[string]*endpointMetrics)
	c.recentRequests = c.recentRequests[:0]
	c.activeUsersToday = make(map[string]struct{})
	c.activeUsersByDay = make(map[string]map[string]struct{})
	c.lastResetDate = c.now().UTC().Format(time.DateOnly)
}

// Record registers a handled request.
func (c *Collector) Record(method, path string, statusCode int, duration time.Duration, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Daily rollover: the "active users today" set resets when the date advances.
	today := c.now().UTC().Format(time.DateOnly)
	if today != c.lastResetDate {
		c.activeUsersToday = make(map[string]struct{})
		c.lastResetDate = today
	}

	endpoint := method + " " + path

	c.requestCounts[endpoint]++
	c.statusCodes[statusCode]++

	durations := append(c.requestDurations[endpoint], duration)
	if len(durations) > maxDurationsPerRoute {
		durations = durations[1:]
	}
	c.requestDurations[endpoint] = durations

	if statusCode >= 400 {
		c.errorCounts[endpoint]++
	}

	em := c.endpoints[endpoint]
	if em == nil {
		em = &endpointMetrics{}
		c.endpoints[endpoint] = em
	}
	em.count++
	em.totalDuration += duration
	em.lastAccessed = c.now().UTC()
	if statusCode >= 400 {
		em.errors++
	}

	if userID != "" {
		c.activeUsersToday[userID] = struct{}{}
		day := c.activeUsersByDay[today]
		if day == nil {
			day = make(map[string]struct{})
			c.activeUsersByDay[today] = day
		}
		day[userID] = struct{}{}
	}

	c.recentRequests = append(c.recentRequests, RequestRecord{
		Timestamp:  c.now().UTC(),
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Duration:   duration,
		UserID:     userID,
	})
	if len(c.recentRequests) > maxRecentRequests {
		c.recentRequests = c.recentRequests[1:]
	}
}

// EndpointSummary is a per-endpoint rollup.
type EndpointSummary struct {
	Endpoint    string  `json:"endpoint"`
	Count       int     `json:"count"`
	AvgDuration float64 `json:"avgDurationMs"`
	Errors      int     `json:"errors"`
	ErrorRate   float64 `json:"errorRate"`
}

// Summary is the aggregate metrics view returned to admins.
type Summary struct {
	TotalRequests    int               `json:"totalRequests"`
	TotalErrors      int               `json:"totalErrors"`
	ErrorRate        float64           `json:"errorRate"`
	StatusCodes      map[int]int       `json:"statusCodes"`
	TopEndpoints     []EndpointSummary `json:"topEndpoints"`
	SlowestEndpoints []EndpointSummary `json:"slowestEndpoints"`
}

// GetSummary returns totals, status-code counts and top/slowest endpoints.
func (c *Collector) GetSummary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, n := range c.requestCounts {
		total += n
	}
	totalErrors := 0
	for _, n := range c.errorCounts {
		totalErrors += n
	}

	all := make([]EndpointSummary, 0, len(c.endpoints))
	for endpoint, em := range c.endpoints {
		avg := float64(em.totalDuration.Milliseconds()) / float64(em.count)
		all = append(all, EndpointSummary{
			Endpoint:    endpoint,
			Count:       em.count,
			AvgDuration: avg,
			Errors:      em.errors,
			ErrorRate:   float64(em.errors) / float64(em.count) * 100,
		})
	}

	top := make([]EndpointSummary, len(all))
	copy(top, all)
	sort.Slice(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > topEndpointCount {
		top = top[:topEndpointCount]
	}

	slowest := make([]EndpointSummary, len(all))
	copy(slowest, all)
	sort.Slice(slowest, func(i, j int) bool { return slowest[i].AvgDuration > slowest[j].AvgDuration })
	if len(slowest) > topEndpointCount {
		slowest = slowest[:topEndpointCount]
	}

	errorRate := 0.0
	if total > 0 {
		errorRate = float64(totalErrors) / float64(total) * 100
	}

	statusCodes := make(map[int]int, len(c.statusCodes))
	for code, n := range c.statusCodes {
		statusCodes[code] = n
	}

	return Summary{
		TotalRequests:    total,
		TotalErrors:      totalErrors,
		ErrorRate:        errorRate,
		StatusCodes:      statusCodes,
		TopEndpoints:     top,
		SlowestEndpoints: slowest,
	}
}

// RecentErrors returns the most recent error requests, newest first.
func (c *Collector) RecentErrors(limit int) []RequestRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	errors := make([]RequestRecord, 0)
	for i := len(c.recentRequests) - 1; i >= 0 && len(errors) < limit; i-- {
		if c.recentRequests[i].StatusCode >= 400 {
			errors = append(errors, c.recentRequests[i])
		}
	}
	return errors
}

// DailyActiveUsers is one day of the DAU history.
type DailyActiveUsers struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// UserActivity summarizes user activity counters.
type UserActivity struct {
	DailyActiveUsers int                `json:"dailyActiveUsers"`
	TotalUniqueUsers int                `json:"totalUniqueUsers"`
	DAUHistory       []DailyActiveUsers `json:"dauHistory"`
}

// GetUserActivity returns today's active users plus a 7-day history.
func (c *Collector) GetUserActivity() UserActivity {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := c.now().UTC()
	history := make([]DailyActiveUsers, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(time.DateOnly)
		history = append(history, DailyActiveUsers{Date: date, Users: len(c.activeUsersByDay[date])})
	}

	unique := make(map[string]struct{})
	for _, day := range c.activeUsersByDay {
		for id := range day {
			unique[id] = struct{}{}
		}
	}

	return UserActivity{
		DailyActiveUsers: len(c.activeUsersToday),
		TotalUniqueUsers: len(unique),
		DAUHistory:       history,
	}
}

// Reset clears all collected metrics.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}
