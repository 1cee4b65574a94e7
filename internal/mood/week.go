// Package mood holds the pure display helpers for mood scores: the
// weekly calendar projection, sentiment labeling and facet targeting.
package mood

import (
	"sort"
	"time"
)

// Sample is one historical mood measurement.
type Sample struct {
	Date  time.Time
	Score float64
}

// DaySlot is one of the seven slots in the weekly chart. Score is nil
// when no sample exists for that day, so charts render a gap rather than
// a false zero.
type DaySlot struct {
	Label string // 3-letter weekday abbreviation
	Date  time.Time
	Score *float64
}

// WeekStart returns the Monday of the week containing now, at midnight
// in now's location. Sunday belongs to the week that started six days
// earlier.
func WeekStart(now time.Time) time.Time {
	day := now
	offset := int(day.Weekday()) - int(time.Monday)
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	start := day.AddDate(0, 0, -offset)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}

// WeekSeries projects a sparse sample list onto the fixed 7-slot week
// containing now, Monday first. Each slot takes the score of the first
// sample falling on that calendar date; the full date is compared, year
// included, so a year-old sample can never populate a current-week slot.
func WeekSeries(samples []Sample, now time.Time) []DaySlot {
	start := WeekStart(now)
	slots := make([]DaySlot, 7)

	for i := range slots {
		date := start.AddDate(0, 0, i)
		slots[i] = DaySlot{
			Label: date.Format("Mon"),
			Date:  date,
		}
		for _, s := range samples {
			if sameDate(s.Date, date) {
				score := s.Score
				slots[i].Score = &score
				break
			}
		}
	}

	return slots
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SentimentLabel maps a 0-10 mood score to a qualitative label.
func SentimentLabel(score float64) string {
	switch {
	case score > 7:
		return "Very Positive"
	case score > 5.5:
		return "Positive"
	case score > 4.5:
		return "Neutral"
	case score > 3:
		return "Negative"
	default:
		return "Very Negative"
	}
}

// SentimentColor maps a 0-10 mood score to a color token, using the same
// thresholds as SentimentLabel.
func SentimentColor(score float64) string {
	switch {
	case score > 7:
		return "text-green-600"
	case score > 5.5:
		return "text-green-500"
	case score > 4.5:
		return "text-yellow-500"
	case score > 3:
		return "text-orange-500"
	default:
		return "text-red-500"
	}
}

// TargetFacets picks the two lowest-scoring facets from a facet→signal
// map: the dimensions most in need of work, ascending. Ties break
// alphabetically so the result is deterministic.
func TargetFacets(signals map[string]float64) []string {
	type fs struct {
		facet string
		score float64
	}
	all := make([]fs, 0, len(signals))
	for facet, score := range signals {
		all = append(all, fs{facet, score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].score != all[j].score {
			return all[i].score < all[j].score
		}
		return all[i].facet < all[j].facet
	})

	n := 2
	if len(all) < n {
		n = len(all)
	}
	targets := make([]string, 0, n)
	for _, f := range all[:n] {
		targets = append(targets, f.facet)
	}
	return targets
}

// Trend is the signed change between two scores, for dashboard cards.
func Trend(previous, current float64) float64 {
	return current - previous
}
