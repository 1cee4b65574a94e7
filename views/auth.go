package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Login offers the backend OAuth entry plus a manual token paste for
// API-key style setups.
func Login(loginURL, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="login">
<h2>Log in</h2>
<p><a class="button" href="%s">Continue with your Ra.AI account</a></p>
<details>
<summary>Use an access token instead</summary>
<form method="post" action="/login">
<input type="hidden" name="_csrf" value="%s">
<input type="password" name="token" placeholder="Paste your access token" required>
<button type="submit">Save token</button>
</form>
</details>
</section>`, templ.EscapeString(loginURL), templ.EscapeString(csrfToken))
		return err
	})
}
