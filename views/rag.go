package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// RagAdmin renders the knowledge-base upload page. status is nil when
// the backend could not be reached.
func RagAdmin(status *api.RagStatus, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section class="rag"><h2>Knowledge base</h2>`); err != nil {
			return err
		}

		if status == nil {
			if err := write(w, `<p class="muted">Retriever status unavailable.</p>`); err != nil {
				return err
			}
		} else if status.RetrieverReady {
			if _, err := fmt.Fprintf(w, `<p>Retriever ready. Store: <code>%s</code></p>`,
				templ.EscapeString(status.VectorstoreDir)); err != nil {
				return err
			}
		} else {
			if err := write(w, `<p>Retriever is still indexing.</p>`); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<form hx-post="/admin/rag/upload" hx-encoding="multipart/form-data" hx-target="#toast-area" hx-swap="none">
<input type="hidden" name="_csrf" value="%s">
<input type="file" name="files" multiple required>
<button type="submit">Upload documents</button>
</form></section>`, templ.EscapeString(csrfToken))
		return err
	})
}
