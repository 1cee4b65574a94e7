package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// Crisis renders the crisis support page. The direct-dial links are
// static and never depend on the backend being reachable; the resource
// directory below them is backend-served when available.
func Crisis(resources map[string]api.CrisisCategory) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section class="crisis">
<h2>Need Support?</h2>
<p>If you're struggling, help is available 24/7.</p>
<div class="crisis-actions">
<a class="button" href="tel:988">Call 988 Crisis Line</a>
<a class="button" href="sms:741741">Text HOME to 741741</a>
<a class="button button-danger" href="tel:911">Emergency: Call 911</a>
</div>`); err != nil {
			return err
		}

		for _, category := range resources {
			if _, err := fmt.Fprintf(w, `<h3>%s</h3><ul class="resources">`,
				templ.EscapeString(category.Title)); err != nil {
				return err
			}
			for _, r := range category.Resources {
				if _, err := fmt.Fprintf(w, `<li><strong>%s</strong>`, templ.EscapeString(r.Name)); err != nil {
					return err
				}
				if r.Phone != "" {
					if _, err := fmt.Fprintf(w, ` &mdash; <a href="tel:%s">%s</a>`,
						templ.EscapeString(r.Phone), templ.EscapeString(r.Phone)); err != nil {
						return err
					}
				}
				if r.Description != "" {
					if _, err := fmt.Fprintf(w, `<br><span class="muted">%s</span>`,
						templ.EscapeString(r.Description)); err != nil {
						return err
					}
				}
				if err := write(w, `</li>`); err != nil {
					return err
				}
			}
			if err := write(w, `</ul>`); err != nil {
				return err
			}
		}

		return write(w, `</section>`)
	})
}
