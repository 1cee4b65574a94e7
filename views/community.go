package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// Community renders the community-wellness page: mentor matching and the
// message-rewrite tool.
func Community(csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="community">
<h2>Community wellness</h2>

<div class="panel">
<h3>Find a mentor</h3>
<p>Get matched with mentors and counselors on your team.</p>
<form hx-post="/community/mentors/match" hx-target="#mentor-matches">
<input type="hidden" name="_csrf" value="%s">
<button type="submit">Find matches</button>
</form>
<div id="mentor-matches"></div>
</div>

<div class="panel">
<h3>Say it better</h3>
<p>Rewrite a difficult message to be assertive and kind before you send it.</p>
<form hx-post="/community/rewrite" hx-target="#rewrite-result">
<input type="hidden" name="_csrf" value="%s">
<textarea name="text" rows="4" placeholder="Paste the message you're about to send..."></textarea>
<button type="submit">Rewrite</button>
</form>
<div id="rewrite-result"></div>
</div>
</section>`, templ.EscapeString(csrfToken), templ.EscapeString(csrfToken))
		return err
	})
}

// MentorMatches renders the proposed mentor list.
func MentorMatches(matches []api.MentorMatch, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if len(matches) == 0 {
			return write(w, `<p class="muted">No mentors available right now.</p>`)
		}
		if err := write(w, `<ul class="matches">`); err != nil {
			return err
		}
		for _, m := range matches {
			name := m.Name
			if name == "" {
				name = m.MentorID
			}
			if _, err := fmt.Fprintf(w, `<li>%s <span class="pct">%.0f%% match</span>
<form hx-post="/community/mentors/accept" hx-target="closest li" hx-swap="outerHTML">
<input type="hidden" name="_csrf" value="%s">
<input type="hidden" name="mentor_id" value="%s">
<button type="submit">Accept</button>
</form></li>`,
				templ.EscapeString(name), m.Score*100,
				templ.EscapeString(csrfToken), templ.EscapeString(m.MentorID)); err != nil {
				return err
			}
		}
		return write(w, `</ul>`)
	})
}

// RewriteResult renders the rewritten message.
func RewriteResult(result *api.Rewrite) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<blockquote class="rewrite">%s</blockquote>`,
			templ.EscapeString(result.Rewritten)); err != nil {
			return err
		}
		if result.Notes != "" {
			if _, err := fmt.Fprintf(w, `<p class="muted">%s</p>`, templ.EscapeString(result.Notes)); err != nil {
				return err
			}
		}
		return nil
	})
}
