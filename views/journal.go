package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/api"
)

var facetLabels = map[string]string{
	"self_awareness":  "Self Awareness",
	"self_regulation": "Self Regulation",
	"motivation":      "Motivation",
	"empathy":         "Empathy",
	"social_skills":   "Social Skills",
}

// FacetLabel maps a wire-format facet key to its display name.
func FacetLabel(facet string) string {
	if label, ok := facetLabels[facet]; ok {
		return label
	}
	return facet
}

// Journal renders the journaling page with an empty analysis area.
func Journal(csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="journal">
<h2>Daily Reflection</h2>
<p>Share your thoughts and get AI-powered emotional insights.</p>
<form hx-post="/journal/analyze" hx-target="#analysis" hx-indicator="#analyzing" hx-disabled-elt="find button">
<input type="hidden" name="_csrf" value="%s">
<textarea name="journal" rows="8" placeholder="I had a challenging meeting with my team today. I felt frustrated when they disagreed with my proposal..."></textarea>
<div class="journal-actions">
<button type="submit">Analyze</button>
<span id="analyzing" class="htmx-indicator">Analyzing&hellip;</span>
</div>
</form>
<div id="analysis"></div>
</section>`, templ.EscapeString(csrfToken))
		return err
	})
}

// JournalAnalysis renders a completed, non-escalated analysis.
func JournalAnalysis(result *api.EntryAnalysis, moodScore float64, sentiment, color, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<div class="analysis">`); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, `<h3>Mood</h3><p class="score %s">%.1f/10 &mdash; %s</p>`,
			templ.EscapeString(color), moodScore, templ.EscapeString(sentiment)); err != nil {
			return err
		}

		if a := result.Analysis; a != nil {
			if err := write(w, `<h3>Emotions</h3><ul class="emotions">`); err != nil {
				return err
			}
			for _, e := range a.Emotions {
				if _, err := fmt.Fprintf(w, `<li>%s <span class="pct">%.0f%%</span></li>`,
					templ.EscapeString(e.Label), e.Score*100); err != nil {
					return err
				}
			}
			if err := write(w, `</ul><h3>Facet signals</h3><ul class="facets">`); err != nil {
				return err
			}
			for facet, score := range a.FacetSignals {
				if _, err := fmt.Fprintf(w, `<li>%s <span class="pct">%.2f</span></li>`,
					templ.EscapeString(FacetLabel(facet)), score); err != nil {
					return err
				}
			}
			if err := write(w, `</ul>`); err != nil {
				return err
			}
			if len(a.Topics) > 0 {
				if _, err := fmt.Fprintf(w, `<h3>Topics</h3><p>%s</p>`,
					templ.EscapeString(strings.Join(a.Topics, ", "))); err != nil {
					return err
				}
			}
		}

		if rec := result.Recommendation; rec != nil {
			if _, err := fmt.Fprintf(w, `<div class="exercise"><h3>Try this: %s</h3><p>%s</p><ol>`,
				templ.EscapeString(rec.Title), templ.EscapeString(rec.Description)); err != nil {
				return err
			}
			for _, step := range rec.Instructions {
				if _, err := fmt.Fprintf(w, `<li>%s</li>`, templ.EscapeString(step)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `</ol><p class="duration">%s</p></div>`,
				templ.EscapeString(rec.Duration)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<form hx-post="/journal/save" hx-target="#toast-area" hx-swap="none">
<input type="hidden" name="_csrf" value="%s">
<button type="submit">Save entry</button>
</form></div>`, templ.EscapeString(csrfToken)); err != nil {
			return err
		}
		return nil
	})
}

// CrisisPanel replaces the analysis area when safety escalates. It is a
// persistent in-page alert, distinct from transient toasts.
func CrisisPanel(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			message = "If you're in crisis, please reach out for immediate support."
		}
		_, err := fmt.Fprintf(w, `<div class="crisis-panel" role="alert">
<h3>Crisis Support Available</h3>
<p>%s</p>
<p><a href="/crisis">View Crisis Resources &rarr;</a></p>
</div>`, templ.EscapeString(message))
		return err
	})
}
