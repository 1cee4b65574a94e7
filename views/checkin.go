package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/models"
)

// CheckinQuestion renders one question of the daily check-in flow.
// selected is the 1-based option index already chosen for this question,
// or -1 when none is.
func CheckinQuestion(q models.CheckinQuestion, index, total, selected int, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<section class="checkin" id="checkin">
<p class="progress">Question %d of %d</p>
<h2>%s</h2>
<form hx-post="/today/next" hx-target="#checkin" hx-swap="outerHTML">
<input type="hidden" name="_csrf" value="%s">
<div role="radiogroup" class="options">`,
			index+1, total, templ.EscapeString(q.Prompt), templ.EscapeString(csrfToken)); err != nil {
			return err
		}

		for i, opt := range q.Options {
			checked := ""
			if i+1 == selected {
				checked = " checked"
			}
			if _, err := fmt.Fprintf(w,
				`<label class="option"><input type="radio" name="answer" value="%d"%s> %s</label>`,
				i+1, checked, templ.EscapeString(opt.Label)); err != nil {
				return err
			}
		}

		if err := write(w, `</div><div class="checkin-nav">`); err != nil {
			return err
		}
		if index > 0 {
			if _, err := fmt.Fprintf(w,
				`<button type="button" hx-post="/today/prev" hx-target="#checkin" hx-swap="outerHTML" hx-include="[name='_csrf']">Back</button>`); err != nil {
				return err
			}
		}
		label := "Next"
		if index == total-1 {
			label = "Finish"
		}
		_, err := fmt.Fprintf(w, `<button type="submit">%s</button></div></form></section>`, label)
		return err
	})
}

// CheckinComplete thanks the user and shows the computed score.
func CheckinComplete(score float64, sentiment, color string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="checkin-done" id="checkin">
<h2>Thank you for checking in today.</h2>
<p class="score %s">%.1f/10 &mdash; %s</p>
<p><a href="/dashboard" hx-get="/dashboard" hx-target="#content" hx-push-url="true">See your week</a></p>
</section>`, templ.EscapeString(color), score, templ.EscapeString(sentiment))
		return err
	})
}

// CheckinAlready is shown when today's check-in already exists.
func CheckinAlready(score float64, sentiment, color string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="checkin-done" id="checkin">
<h2>You already checked in today.</h2>
<p class="score %s">%.1f/10 &mdash; %s</p>
<p>Come back tomorrow, or <a href="/journal">write in your journal</a> in the meantime.</p>
</section>`, templ.EscapeString(color), score, templ.EscapeString(sentiment))
		return err
	})
}
