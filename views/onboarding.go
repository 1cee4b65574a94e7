package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// Onboarding renders the baseline assessment as one form, all questions
// on a 1-5 Likert scale.
func Onboarding(questions []api.BaselineQuestion, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="onboarding">
<h2>Baseline assessment</h2>
<p>Answer honestly; this seeds your five emotional-intelligence facet scores.</p>
<form method="post" action="/onboarding">
<input type="hidden" name="_csrf" value="%s">`, templ.EscapeString(csrfToken)); err != nil {
			return err
		}

		for _, q := range questions {
			if _, err := fmt.Fprintf(w, `<fieldset><legend>%s</legend><div class="likert">`,
				templ.EscapeString(q.Text)); err != nil {
				return err
			}
			for v := 1; v <= 5; v++ {
				if _, err := fmt.Fprintf(w,
					`<label><input type="radio" name="q_%s" value="%d" required> %d</label>`,
					templ.EscapeString(q.QID), v, v); err != nil {
					return err
				}
			}
			if err := write(w, `</div></fieldset>`); err != nil {
				return err
			}
		}

		return write(w, `<button type="submit">See my results</button></form></section>`)
	})
}

// OnboardingResult shows the scored baseline and, when available, a
// first exercise targeting the focus facets.
func OnboardingResult(result *api.BaselineResult, exercise *api.ExerciseRecommendation) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="onboarding-result">
<h2>Your baseline</h2>
<p>%s</p>
<ul class="facets">`, templ.EscapeString(result.Summary)); err != nil {
			return err
		}

		facets := []struct {
			key   string
			score float64
		}{
			{"self_awareness", result.Scores.SelfAwareness},
			{"self_regulation", result.Scores.SelfRegulation},
			{"motivation", result.Scores.Motivation},
			{"empathy", result.Scores.Empathy},
			{"social_skills", result.Scores.SocialSkills},
		}
		for _, f := range facets {
			if _, err := fmt.Fprintf(w, `<li>%s <span class="pct">%.0f%%</span></li>`,
				templ.EscapeString(FacetLabel(f.key)), f.score*100); err != nil {
				return err
			}
		}
		if err := write(w, `</ul>`); err != nil {
			return err
		}

		if len(result.Focus) > 0 {
			if err := write(w, `<h3>Focus areas</h3><ul>`); err != nil {
				return err
			}
			for _, f := range result.Focus {
				if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(FacetLabel(f))); err != nil {
					return err
				}
			}
			if err := write(w, `</ul>`); err != nil {
				return err
			}
		}

		if exercise != nil {
			if _, err := fmt.Fprintf(w, `<div class="exercise"><h3>Start with: %s</h3><p>%s</p></div>`,
				templ.EscapeString(exercise.Title), templ.EscapeString(exercise.Description)); err != nil {
				return err
			}
		}

		return write(w, `<p><a class="button" href="/today">Do your first check-in</a></p></section>`)
	})
}
