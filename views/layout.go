// Package views holds the templ components for every page. Components
// are rendered by handlers either as full pages or as HTMX fragments.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/views/common"
)

func write(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// Layout renders the page shell around its child component.
func Layout(title string, loggedIn bool, backendReady bool, csrfToken, cspNonce string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<title>%s - Ra.AI</title>`, templ.EscapeString(title)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<meta name="csrf-token" content="%s">`, templ.EscapeString(csrfToken)); err != nil {
			return err
		}
		if err := write(w, `<link rel="stylesheet" href="/assets/css/style.css">`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script src="https://unpkg.com/htmx.org@1.9.12" nonce="%s"></script>`, templ.EscapeString(cspNonce)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<script src="https://cdn.jsdelivr.net/npm/echarts@5/dist/echarts.min.js" nonce="%s"></script>`, templ.EscapeString(cspNonce)); err != nil {
			return err
		}
		if err := write(w, `</head><body hx-headers='{"X-CSRF-Token": "`+templ.EscapeString(csrfToken)+`"}'>`); err != nil {
			return err
		}

		if err := common.Nav(loggedIn, backendReady, csrfToken).Render(ctx, w); err != nil {
			return err
		}

		if err := write(w, `<main id="content" class="container">`); err != nil {
			return err
		}
		if err := templ.GetChildren(ctx).Render(ctx, w); err != nil {
			return err
		}
		return write(w, `</main><div id="toast-area"></div></body></html>`)
	})
}

// Toast is the transient failure notice swapped into the toast area.
func Toast(message string) templ.Component {
	return toast(message, "toast-error")
}

// Notice is the success variant of Toast.
func Notice(message string) templ.Component {
	return toast(message, "toast-ok")
}

func toast(message, class string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div id="toast-area" hx-swap-oob="true"><div class="toast %s" role="alert">%s</div></div>`,
			class, templ.EscapeString(message))
		return err
	})
}
