package mood

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStartMidweek(t *testing.T) {
	// Wednesday 2025-03-12 -> Monday 2025-03-10.
	got := WeekStart(time.Date(2025, 3, 12, 15, 45, 0, 0, time.UTC))
	assert.Equal(t, date(2025, 3, 10), got)
}

func TestWeekStartMonday(t *testing.T) {
	got := WeekStart(time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC))
	assert.Equal(t, date(2025, 3, 10), got)
}

func TestWeekStartSunday(t *testing.T) {
	// Sunday belongs to the week that began the previous Monday.
	got := WeekStart(date(2025, 3, 16))
	assert.Equal(t, date(2025, 3, 10), got)
}

func TestWeekSeriesAlwaysSevenSlots(t *testing.T) {
	slots := WeekSeries(nil, date(2025, 3, 12))
	require.Len(t, slots, 7)

	labels := make([]string, 0, 7)
	for _, s := range slots {
		labels = append(labels, s.Label)
		assert.Nil(t, s.Score)
	}
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, labels)
}

func TestWeekSeriesPlacesSample(t *testing.T) {
	wednesday := date(2025, 3, 12)
	slots := WeekSeries([]Sample{{Date: wednesday, Score: 7.5}}, wednesday)

	require.NotNil(t, slots[2].Score)
	assert.Equal(t, 7.5, *slots[2].Score)

	for i, s := range slots {
		if i == 2 {
			continue
		}
		assert.Nil(t, s.Score, "slot %d should be empty", i)
	}
}

func TestWeekSeriesIgnoresOtherWeeks(t *testing.T) {
	now := date(2025, 3, 12)
	samples := []Sample{
		{Date: date(2025, 3, 5), Score: 4}, // previous Wednesday
		{Date: date(2025, 3, 19), Score: 9}, // next Wednesday
	}
	for _, s := range WeekSeries(samples, now) {
		assert.Nil(t, s.Score)
	}
}

func TestWeekSeriesYearMatters(t *testing.T) {
	// A sample from the same month and day one year earlier must not
	// populate a current-week slot.
	now := date(2025, 3, 12)
	slots := WeekSeries([]Sample{{Date: date(2024, 3, 12), Score: 6}}, now)
	for _, s := range slots {
		assert.Nil(t, s.Score)
	}
}

func TestWeekSeriesCrossYearWeek(t *testing.T) {
	// Thursday 2026-01-01: the week started Monday 2025-12-29.
	now := date(2026, 1, 1)
	slots := WeekSeries([]Sample{
		{Date: date(2025, 12, 30), Score: 5},
		{Date: date(2026, 1, 2), Score: 8},
	}, now)

	assert.Equal(t, date(2025, 12, 29), slots[0].Date)
	require.NotNil(t, slots[1].Score)
	assert.Equal(t, 5.0, *slots[1].Score)
	require.NotNil(t, slots[4].Score)
	assert.Equal(t, 8.0, *slots[4].Score)
}

func TestSentimentLabelThresholds(t *testing.T) {
	cases := []struct {
		score float64
		label string
		color string
	}{
		{10, "Very Positive", "text-green-600"},
		{7.1, "Very Positive", "text-green-600"},
		{7, "Positive", "text-green-500"},
		{5.6, "Positive", "text-green-500"},
		{5.5, "Neutral", "text-yellow-500"},
		{4.6, "Neutral", "text-yellow-500"},
		{4.5, "Negative", "text-orange-500"},
		{3.1, "Negative", "text-orange-500"},
		{3, "Very Negative", "text-red-500"},
		{0, "Very Negative", "text-red-500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, SentimentLabel(tc.score), "score %v", tc.score)
		assert.Equal(t, tc.color, SentimentColor(tc.score), "score %v", tc.score)
	}
}

func TestTargetFacetsPicksTwoLowest(t *testing.T) {
	signals := map[string]float64{
		"self_awareness":  0.8,
		"self_regulation": 0.3,
		"motivation":      0.6,
		"empathy":         0.2,
		"social_skills":   0.7,
	}
	assert.Equal(t, []string{"empathy", "self_regulation"}, TargetFacets(signals))
}

func TestTargetFacetsTieBreaksAlphabetically(t *testing.T) {
	signals := map[string]float64{
		"empathy":    0.5,
		"motivation": 0.5,
		"social":     0.5,
	}
	assert.Equal(t, []string{"empathy", "motivation"}, TargetFacets(signals))
}

func TestTargetFacetsFewerThanTwo(t *testing.T) {
	assert.Equal(t, []string{"empathy"}, TargetFacets(map[string]float64{"empathy": 0.1}))
	assert.Empty(t, TargetFacets(nil))
}

func TestTrend(t *testing.T) {
	assert.Equal(t, 2.0, Trend(4, 6))
	assert.Equal(t, -1.5, Trend(6, 4.5))
	assert.Equal(t, 0.0, Trend(5, 5))
}
