package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/logger"
)

func traceQuery(l *GormZapLogger, elapsed time.Duration) {
	l.Trace(context.Background(), time.Now().Add(-elapsed), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)
}

func TestSlowQueryThresholdFromConfig(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewGormZapLogger(zap.New(core), 10*time.Millisecond)

	traceQuery(l, 50*time.Millisecond)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "GORM Trace [SLOW]", logs.All()[0].Message)
}

func TestFastQueryBelowThresholdNotWarned(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	l := NewGormZapLogger(zap.New(core), time.Second)

	traceQuery(l, 50*time.Millisecond)

	assert.Zero(t, logs.Len())
}

func TestZeroThresholdFallsBack(t *testing.T) {
	l := NewGormZapLogger(zap.NewNop(), 0)
	assert.Equal(t, 200*time.Millisecond, l.SlowThreshold)
}

func TestLogModeKeepsThreshold(t *testing.T) {
	l := NewGormZapLogger(zap.NewNop(), 500*time.Millisecond)
	clone := l.LogMode(logger.Info).(*GormZapLogger)
	assert.Equal(t, 500*time.Millisecond, clone.SlowThreshold)
}
