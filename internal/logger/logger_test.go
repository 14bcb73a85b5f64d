package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewAcceptsKnownLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		log, err := New(level)
		require.NoError(t, err, "level %q", level)
		assert.NotNil(t, log)
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" WARNING "))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestKvsIncludesEvent(t *testing.T) {
	out := kvs("crawl_done", map[string]any{"inserted": 3})
	assert.Equal(t, "event", out[0])
	assert.Equal(t, "crawl_done", out[1])
	assert.Len(t, out, 4)
}

func TestNopLoggerSatisfiesInterface(t *testing.T) {
	var log Logger = NopLogger{}
	log.InfoObj("msg", "event", nil)
	assert.NoError(t, log.Sync())
}
