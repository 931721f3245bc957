package diag

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewLogger("warn", path)
	require.NoError(t, err)
	defer logger.Sync() // nolint

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLoggerBadLevel(t *testing.T) {
	_, err := NewLogger("loud", "stderr")
	assert.Error(t, err)
}

func TestMetricsNoProvider(t *testing.T) {
	m := NewMetrics(global.Meter("test"))

	assert.NotPanics(t, func() {
		m.Observe(context.Background(), "create", "ok", 3*time.Millisecond)
		m.Request(context.Background(), "GET", 200)
	})
}
