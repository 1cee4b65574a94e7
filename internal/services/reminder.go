package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/checkin"
	"github.com/MathiasEthan/RaAI/internal/config"
	"github.com/MathiasEthan/RaAI/internal/store"
)

// Reminder nudges the user when the configured reminder time passes
// without a completed daily check-in.
type Reminder struct {
	log   *zap.Logger
	store store.Store
}

func NewReminder(log *zap.Logger, s store.Store) *Reminder {
	return &Reminder{log: log, store: s}
}

// Start runs the reminder loop in a goroutine.
func (r *Reminder) Start() {
	r.log.Info("Starting check-in reminder scheduler...")
	go func() {
		// Ticker will fire on every minute.
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			<-ticker.C
			r.runReminderCheck(time.Now())
		}
	}()
}

func (r *Reminder) runReminderCheck(now time.Time) {
	cfg := config.Conf.Reminder
	if !cfg.Enabled {
		return
	}

	currentTime := now.Format("15:04")
	if currentTime != cfg.Time {
		return
	}
	r.log.Debug("Running reminder check", zap.String("time", currentTime))

	if checkin.CompletedToday(r.store, now) {
		return
	}

	r.log.Info("Daily check-in not yet completed", zap.String("date", now.Format(checkin.DateLayout)))
	// Desktop/email delivery would hook in here; the console nudge is the
	// only channel for now.
	fmt.Printf("--- REMINDER ---\nYou haven't completed today's check-in yet. Visit /today when you have a minute.\n\n")
}
