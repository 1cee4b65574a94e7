package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/MathiasEthan/RaAI/internal/api"
	"github.com/MathiasEthan/RaAI/internal/checkin"
	"github.com/MathiasEthan/RaAI/internal/mood"
	"github.com/MathiasEthan/RaAI/internal/repository"
	"github.com/MathiasEthan/RaAI/internal/services"
	"github.com/MathiasEthan/RaAI/internal/store"
	"github.com/MathiasEthan/RaAI/views"
)

type DashboardHandler struct {
	log    *zap.Logger
	store  store.Store
	client *api.Client
	health *services.HealthMonitor
	useDB  bool
}

func NewDashboardHandler(log *zap.Logger, s store.Store, client *api.Client, health *services.HealthMonitor, useDB bool) *DashboardHandler {
	return &DashboardHandler{log: log, store: s, client: client, health: health, useDB: useDB}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	now := time.Now()
	samples := h.weekSamples(c, now)
	slots := mood.WeekSeries(samples, now)

	weekChart := generateWeekChart(slots)
	weekJSON, _ := json.Marshal(weekChart.JSON())

	seriesJSON := ""
	if series := h.backendSeries(c, 30); len(series) > 0 {
		seriesChart := generateSeriesChart(series)
		raw, _ := json.Marshal(seriesChart.JSON())
		seriesJSON = string(raw)
	}

	component := views.Dashboard(h.buildCards(slots, now), string(weekJSON), seriesJSON, cspNonce(c))
	renderPage(c, "Dashboard", h.client.Token() != "", h.health.Ready(), component)
}

// WeekJSON serves the 7-slot weekly series as JSON for external chart
// consumers.
func (h *DashboardHandler) WeekJSON(c *gin.Context) {
	now := time.Now()
	slots := mood.WeekSeries(h.weekSamples(c, now), now)

	type slotJSON struct {
		Label string   `json:"label"`
		Date  string   `json:"date"`
		Score *float64 `json:"score"`
	}
	out := make([]slotJSON, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotJSON{Label: s.Label, Date: s.Date.Format(checkin.DateLayout), Score: s.Score})
	}
	c.JSON(http.StatusOK, gin.H{"series": out})
}

// SeriesJSON proxies the backend mood series for chart consumers.
func (h *DashboardHandler) SeriesJSON(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		days = 30
	}
	series := h.backendSeries(c, days)
	if series == nil {
		c.JSON(http.StatusBadGateway, gin.H{"detail": "mood series unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}

// weekSamples loads this week's mood history: from the local database
// when one is configured, otherwise just today's persisted score.
func (h *DashboardHandler) weekSamples(c *gin.Context, now time.Time) []mood.Sample {
	if h.useDB {
		records, err := repository.RecentCheckins(c.Request.Context(), now, 7)
		if err != nil {
			h.log.Error("Failed to load check-in history", zap.Error(err))
		} else {
			samples := make([]mood.Sample, 0, len(records))
			for _, r := range records {
				date, err := time.ParseInLocation(checkin.DateLayout, r.Date, now.Location())
				if err != nil {
					continue
				}
				samples = append(samples, mood.Sample{Date: date, Score: r.Score})
			}
			return samples
		}
	}

	if checkin.CompletedToday(h.store, now) {
		if score, ok := checkin.DailyScore(h.store); ok {
			return []mood.Sample{{Date: now, Score: score}}
		}
	}
	return nil
}

func (h *DashboardHandler) backendSeries(c *gin.Context, days int) []api.MoodSample {
	user, err := h.client.Me(c.Request.Context())
	if err != nil {
		h.log.Debug("No backend identity, skipping mood series", zap.Error(err))
		return nil
	}
	series, err := h.client.MoodSeries(c.Request.Context(), user.ID, days)
	if err != nil {
		h.log.Warn("Mood series fetch failed", zap.Error(err), zap.String("kind", api.Classify(err).String()))
		return nil
	}
	if series == nil {
		// Distinguish "no data yet" from "fetch failed" for callers.
		series = []api.MoodSample{}
	}
	return series
}

func (h *DashboardHandler) buildCards(slots []mood.DaySlot, now time.Time) []views.DashboardCard {
	cards := make([]views.DashboardCard, 0, 3)

	var today, yesterday *float64
	var sum float64
	var n int
	for i, slot := range slots {
		if slot.Score == nil {
			continue
		}
		sum += *slot.Score
		n++
		switch {
		case sameDay(slot.Date, now):
			today = slots[i].Score
		case sameDay(slot.Date, now.AddDate(0, 0, -1)):
			yesterday = slots[i].Score
		}
	}

	if today != nil {
		cards = append(cards, views.DashboardCard{
			Title: "Today",
			Value: fmt.Sprintf("%.1f/10", *today),
			Color: mood.SentimentColor(*today),
			Note:  mood.SentimentLabel(*today),
		})
	} else {
		cards = append(cards, views.DashboardCard{
			Title: "Today",
			Value: "—",
			Note:  "No check-in yet",
		})
	}

	if n > 0 {
		avg := sum / float64(n)
		cards = append(cards, views.DashboardCard{
			Title: "Week average",
			Value: fmt.Sprintf("%.1f/10", avg),
			Color: mood.SentimentColor(avg),
			Note:  fmt.Sprintf("%d day(s) recorded", n),
		})
	}

	if today != nil && yesterday != nil {
		delta := mood.Trend(*yesterday, *today)
		note := "vs yesterday"
		cards = append(cards, views.DashboardCard{
			Title: "Trend",
			Value: fmt.Sprintf("%+.1f", delta),
			Note:  note,
		})
	}

	return cards
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// generateWeekChart builds the weekly line chart. Missing days stay nil
// so echarts renders a gap instead of a false zero.
func generateWeekChart(slots []mood.DaySlot) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "This Week",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Max:  10,
			Min:  0,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	labels := make([]string, 0, len(slots))
	items := make([]opts.LineData, 0, len(slots))
	for _, slot := range slots {
		labels = append(labels, slot.Label)
		if slot.Score != nil {
			items = append(items, opts.LineData{Value: *slot.Score})
		} else {
			items = append(items, opts.LineData{Value: nil})
		}
	}

	line.SetXAxis(labels).
		AddSeries("Mood", items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}

// generateSeriesChart builds the longer-term chart with the backend's
// EMA overlays.
func generateSeriesChart(series []api.MoodSample) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Mood Index",
			Subtitle: "with 7 and 14 day averages",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	labels := make([]string, 0, len(series))
	moodItems := make([]opts.LineData, 0, len(series))
	ema7Items := make([]opts.LineData, 0, len(series))
	ema14Items := make([]opts.LineData, 0, len(series))
	for _, s := range series {
		labels = append(labels, s.Date)
		moodItems = append(moodItems, opts.LineData{Value: s.MoodIndex})
		ema7Items = append(ema7Items, opts.LineData{Value: s.EMA7})
		ema14Items = append(ema14Items, opts.LineData{Value: s.EMA14})
	}

	line.SetXAxis(labels).
		AddSeries("Mood Score", moodItems).
		AddSeries("7-day Average", ema7Items).
		AddSeries("14-day Average", ema14Items).
		SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
