package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// DashboardCard is one summary tile above the charts.
type DashboardCard struct {
	Title string
	Value string
	Color string
	Note  string
}

// Dashboard renders the summary cards and the mood charts. weekJSON and
// seriesJSON are pre-built echarts option objects; seriesJSON is empty
// when the backend series could not be fetched.
func Dashboard(cards []DashboardCard, weekJSON, seriesJSON, cspNonce string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<section class="dashboard"><h2>Your week</h2><div class="cards">`); err != nil {
			return err
		}
		for _, card := range cards {
			if _, err := fmt.Fprintf(w,
				`<div class="card"><h4>%s</h4><p class="value %s">%s</p><p class="note">%s</p></div>`,
				templ.EscapeString(card.Title), templ.EscapeString(card.Color),
				templ.EscapeString(card.Value), templ.EscapeString(card.Note)); err != nil {
				return err
			}
		}
		if err := write(w, `</div>`); err != nil {
			return err
		}

		// Chart option JSON comes from go-echarts, not user input, and
		// must not be HTML-escaped.
		if _, err := fmt.Fprintf(w, `<div id="week-chart" class="chart"></div>
<script nonce="%s">echarts.init(document.getElementById("week-chart")).setOption(%s);</script>`,
			templ.EscapeString(cspNonce), weekJSON); err != nil {
			return err
		}

		if seriesJSON != "" {
			if _, err := fmt.Fprintf(w, `<h2>Mood over time</h2><div id="series-chart" class="chart"></div>
<script nonce="%s">echarts.init(document.getElementById("series-chart")).setOption(%s);</script>`,
				templ.EscapeString(cspNonce), seriesJSON); err != nil {
				return err
			}
		} else {
			if err := write(w, `<p class="muted">Longer-term trends appear here once the backend is reachable.</p>`); err != nil {
				return err
			}
		}

		return write(w, `</section>`)
	})
}
