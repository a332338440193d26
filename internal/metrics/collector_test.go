package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_SummaryAggregates(t *testing.T) {
	c := NewCollector()

	c.Record("GET", "/api/v1/stories", 200, 10*time.Millisecond, "user-1")
	c.Record("GET", "/api/v1/stories", 200, 30*time.Millisecond, "user-2")
	c.Record("GET", "/api/v1/stories", 500, 20*time.Millisecond, "")
	c.Record("POST", "/api/v1/auth/login", 401, 5*time.Millisecond, "")

	summary := c.GetSummary()

	assert.Equal(t, 4, summary.TotalRequests)
	assert.Equal(t, 2, summary.TotalErrors)
	assert.InDelta(t, 50.0, summary.ErrorRate, 0.001)
	assert.Equal(t, 2, summary.StatusCodes[200])
	assert.Equal(t, 1, summary.StatusCodes[500])
	assert.Equal(t, 1, summary.StatusCodes[401])

	require.NotEmpty(t, summary.TopEndpoints)
	assert.Equal(t, "GET /api/v1/stories", summary.TopEndpoints[0].Endpoint)
	assert.Equal(t, 3, summary.TopEndpoints[0].Count)
}

func TestCollector_RecentErrorsNewestFirst(t *testing.T) {
	c := NewCollector()

	c.Record("GET", "/a", 404, time.Millisecond, "")
	c.Record("GET", "/b", 200, time.Millisecond, "")
	c.Record("GET", "/c", 500, time.Millisecond, "")

	errs := c.RecentErrors(10)

	require.Len(t, errs, 2)
	assert.Equal(t, "/c", errs[0].Path)
	assert.Equal(t, "/a", errs[1].Path)

	errs = c.RecentErrors(1)
	require.Len(t, errs, 1)
	assert.Equal(t, "/c", errs[0].Path)
}

func TestCollector_UserActivityDailyRollover(t *testing.T) {
	c := NewCollector()
	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := day1
	c.now = func() time.Time { return current }
	c.Reset() // re-anchor lastResetDate on the fake clock

	c.Record("GET", "/a", 200, time.Millisecond, "user-1")
	c.Record("GET", "/a", 200, time.Millisecond, "user-2")
	c.Record("GET", "/a", 200, time.Millisecond, "user-2")

	activity := c.GetUserActivity()
	assert.Equal(t, 2, activity.DailyActiveUsers)
	assert.Equal(t, 2, activity.TotalUniqueUsers)

	// Next day: today's set resets, history keeps both days.
	current = day1.AddDate(0, 0, 1)
	c.Record("GET", "/a", 200, time.Millisecond, "user-3")

	activity = c.GetUserActivity()
	assert.Equal(t, 1, activity.DailyActiveUsers)
	assert.Equal(t, 3, activity.TotalUniqueUsers)

	require.Len(t, activity.DAUHistory, 7)
	assert.Equal(t, "2025-06-01", activity.DAUHistory[5].Date)
	assert.Equal(t, 2, activity.DAUHistory[5].Users)
	assert.Equal(t, "2025-06-02", activity.DAUHistory[6].Date)
	assert.Equal(t, 1, activity.DAUHistory[6].Users)
}

func TestCollector_ResetClearsEverything(t *testing.T) {
	c := NewCollector()

	c.Record("GET", "/a", 500, time.Millisecond, "user-1")
	c.Reset()

	summary := c.GetSummary()
	assert.Zero(t, summary.TotalRequests)
	assert.Zero(t, summary.TotalErrors)
	assert.Empty(t, c.RecentErrors(10))
	assert.Zero(t, c.GetUserActivity().TotalUniqueUsers)
}

func TestCollector_BoundsRecentRequests(t *testing.T) {
	c := NewCollector()

	for i := 0; i < maxRecentRequests+50; i++ {
		c.Record("GET", "/a", 400, time.Millisecond, "")
	}

	assert.Len(t, c.recentRequests, maxRecentRequests)
}
