package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Home is the landing page.
func Home() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, `<section class="hero">
<h1>Understand how you feel, one day at a time.</h1>
<p>Ra.AI pairs a 60-second daily check-in with AI-assisted journaling to help you
notice patterns in your emotional wellbeing and build the skills to shift them.</p>
<div class="hero-actions">
<a class="button" href="/onboarding">Get started</a>
<a class="button button-ghost" href="/learn-more">Learn more</a>
</div>
</section>
<section class="features">
<div class="feature"><h3>Daily check-in</h3><p>Six quick questions, scored into a single 0&ndash;10 mood index.</p></div>
<div class="feature"><h3>Journal analysis</h3><p>Write freely; get emotions, themes and a suggested exercise back.</p></div>
<div class="feature"><h3>Weekly trends</h3><p>Your week at a glance, with 7 and 14 day moving averages.</p></div>
</section>`)
	})
}

// LearnMore is the marketing explainer page.
func LearnMore() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w, `<article class="prose">
<h1>How Ra.AI works</h1>
<p>Every feature is built around five emotional-intelligence facets:
self-awareness, self-regulation, motivation, empathy and social skills.</p>
<p>Your daily check-in produces a mood index between 0 and 10. Journaling runs
through an analysis service that surfaces the emotions in your writing and
recommends a short exercise targeting the facets that need the most attention.</p>
<p>Everything you write is screened for crisis signals first. If you ever need
immediate help, the <a href="/crisis">crisis support page</a> lists people you
can reach right now.</p>
<p><a class="button" href="/onboarding">Take the baseline assessment</a></p>
</article>`)
	})
}
