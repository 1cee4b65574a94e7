package common

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Nav renders the top navigation bar. The status dot reflects backend
// reachability as last seen by the health monitor.
func Nav(loggedIn bool, backendReady bool, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		status := `<span class="status status-down" title="Backend unreachable"></span>`
		if backendReady {
			status = `<span class="status status-up" title="Backend connected"></span>`
		}

		html := `<nav id="nav" class="nav">` +
			`<a class="brand" href="/">Ra.AI</a>` +
			`<a href="/today" hx-get="/today" hx-target="#content" hx-push-url="true">Today</a>` +
			`<a href="/journal" hx-get="/journal" hx-target="#content" hx-push-url="true">Journal</a>` +
			`<a href="/chat" hx-get="/chat" hx-target="#content" hx-push-url="true">Mood Chat</a>` +
			`<a href="/dashboard" hx-get="/dashboard" hx-target="#content" hx-push-url="true">Dashboard</a>` +
			`<a href="/community" hx-get="/community" hx-target="#content" hx-push-url="true">Community</a>` +
			`<a href="/crisis" class="nav-crisis">Crisis Support</a>`

		if loggedIn {
			html += `<form class="nav-logout" method="post" action="/logout">` +
				`<input type="hidden" name="_csrf" value="` + templ.EscapeString(csrfToken) + `">` +
				`<button type="submit">Log out</button></form>`
		} else {
			html += `<a href="/login" class="nav-login">Log in</a>`
		}
		html += status + `</nav>`

		return writeString(w, html)
	})
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
