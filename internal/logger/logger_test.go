package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok, s)
		require.Equal(t, lvl, got)
	}

	got, ok := ParseLogLevel("unknown")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, got)
}

// TestFromContext checks the fallback to the global logger and the scoped helpers.
func TestFromContext(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
	require.Same(t, Logger(), FromContext(nil)) //nolint:staticcheck

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "app")
	ctx = WithKV(ctx, "session", "abc")

	InfoKV(ctx, "gesture activated", "symbol", "FIST")
	Debugf(ctx, "frame %d", 7)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "app", entries[0].LoggerName)
	require.Equal(t, "gesture activated", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "abc", fields["session"])
	require.Equal(t, "FIST", fields["symbol"])
	require.Equal(t, "frame 7", entries[1].Message)
}

func TestNew_RespectsLevel(t *testing.T) {
	t.Parallel()

	l := New(zapcore.WarnLevel)
	require.False(t, l.Desugar().Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
