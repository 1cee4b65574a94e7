package services

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/MathiasEthan/RaAI/internal/api"
)

// HealthMonitor polls the backend /health endpoint so pages can show a
// readiness badge without each request paying for a probe.
type HealthMonitor struct {
	log      *zap.Logger
	client   *api.Client
	interval time.Duration

	ready     atomic.Bool
	retriever atomic.Bool
}

func NewHealthMonitor(log *zap.Logger, client *api.Client, interval time.Duration) *HealthMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &HealthMonitor{log: log, client: client, interval: interval}
}

// Start probes once immediately, then keeps polling in a goroutine.
func (m *HealthMonitor) Start() {
	m.probe()
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			<-ticker.C
			m.probe()
		}
	}()
}

func (m *HealthMonitor) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	status, err := m.client.Health(ctx)
	if err != nil {
		if m.ready.Swap(false) {
			m.log.Warn("Backend became unreachable", zap.Error(err))
		}
		m.retriever.Store(false)
		return
	}

	if !m.ready.Swap(true) {
		m.log.Info("Backend is reachable", zap.String("status", status.Status))
	}
	m.retriever.Store(status.RetrieverReady)
}

// Ready reports whether the last probe reached the backend.
func (m *HealthMonitor) Ready() bool {
	return m.ready.Load()
}

// RetrieverReady reports whether the backend's document retriever is up.
func (m *HealthMonitor) RetrieverReady() bool {
	return m.retriever.Load()
}
