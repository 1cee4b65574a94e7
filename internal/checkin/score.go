// Package checkin turns daily questionnaire answers into a 0-10 mood
// score and enforces the one-check-in-per-day rule.
package checkin

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/MathiasEthan/RaAI/internal/models"
	"github.com/MathiasEthan/RaAI/internal/store"
)

// Unanswered is the sentinel for a question with no selection.
const Unanswered = -1

// DateLayout is the calendar-day format used for the dedup key.
const DateLayout = "2006-01-02"

// Score computes the aggregate mood score for one completed check-in.
//
// selections holds one entry per question, each either Unanswered or a
// 1-based index into that question's option list. The aggregate is the
// mean of the selected options' scores over answered questions only, so
// skipping a question does not drag the average down. An out-of-range
// selection counts as unanswered rather than panicking. All questions
// unanswered yields 0.
//
// The result is a pure function of (selections, questionnaire): no clock,
// no hidden state.
func Score(q *models.Questionnaire, selections []int) float64 {
	var sum float64
	var answered int

	for i, question := range q.Questions {
		if i >= len(selections) {
			break
		}
		sel := selections[i]
		if sel == Unanswered {
			continue
		}
		idx := sel - 1
		if idx < 0 || idx >= len(question.Options) {
			continue
		}
		sum += question.Options[idx].Score
		answered++
	}

	if answered == 0 {
		return 0
	}
	return sum / float64(answered)
}

// CompletedToday reports whether a check-in was already recorded for
// now's calendar date. Pages must consult this before re-entering the
// questionnaire or recomputing a score.
func CompletedToday(s store.Store, now time.Time) bool {
	last, ok := s.Get(store.KeyLastCheckIn)
	return ok && last == now.Format(DateLayout)
}

// SaveResult persists the completed check-in under the client-storage
// keys, overwriting any prior value.
func SaveResult(s store.Store, now time.Time, selections []int, score float64) error {
	if err := s.Set(store.KeyLastCheckIn, now.Format(DateLayout)); err != nil {
		return err
	}
	raw, err := json.Marshal(selections)
	if err != nil {
		return err
	}
	if err := s.Set(store.KeyLastResponses, string(raw)); err != nil {
		return err
	}
	return s.Set(store.KeyDailyScore, strconv.FormatFloat(score, 'f', -1, 64))
}

// LastResponses reads back the persisted selection vector, if any.
func LastResponses(s store.Store) ([]int, bool) {
	raw, ok := s.Get(store.KeyLastResponses)
	if !ok {
		return nil, false
	}
	var selections []int
	if err := json.Unmarshal([]byte(raw), &selections); err != nil {
		return nil, false
	}
	return selections, true
}

// DailyScore reads back the persisted aggregate score, if any.
func DailyScore(s store.Store) (float64, bool) {
	raw, ok := s.Get(store.KeyDailyScore)
	if !ok {
		return 0, false
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return score, true
}
