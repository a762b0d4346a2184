package logger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/leandrodaf/ump/sdk/contracts"
)

func newObserved(level zapcore.Level) (*ZapLogger, *observer.ObservedLogs) {
	lvl := zap.NewAtomicLevelAt(level)
	core, logs := observer.New(lvl)
	z := &ZapLogger{level: lvl}
	z.logger.Store(zap.New(core))
	return z, logs
}

func TestZapLoggerFields(t *testing.T) {
	z, logs := newObserved(zapcore.DebugLevel)

	z.Info("packet",
		z.Field().String("source", "keys"),
		z.Field().Uint32("word0", 0x20913C60),
		z.Field().Uint8("group", 3),
		z.Field().Int("dropped", 2),
		z.Field().Bool("midi2", true),
		z.Field().Error("error", errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "packet", entry.Message)
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	ctx := entry.ContextMap()
	assert.Equal(t, "keys", ctx["source"])
	assert.Equal(t, uint32(0x20913C60), ctx["word0"])
	assert.Equal(t, uint8(3), ctx["group"])
	assert.Equal(t, int64(2), ctx["dropped"])
	assert.Equal(t, true, ctx["midi2"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestZapLoggerLevels(t *testing.T) {
	z, logs := newObserved(zapcore.InfoLevel)

	z.Debug("hidden")
	z.Info("info")
	z.Warn("warn")
	z.Error("error")
	assert.Equal(t, []string{"info", "warn", "error"}, messages(logs))

	z.SetLevel(contracts.DebugLevel)
	z.Debug("debug")
	assert.Equal(t, 1, logs.FilterMessage("debug").Len())

	z.SetLevel(contracts.ErrorLevel)
	z.Warn("quiet")
	assert.Zero(t, logs.FilterMessage("quiet").Len())
}

func TestToZapLevel(t *testing.T) {
	tests := map[contracts.LogLevel]zapcore.Level{
		contracts.InfoLevel:    zapcore.InfoLevel,
		contracts.DebugLevel:   zapcore.DebugLevel,
		contracts.WarnLevel:    zapcore.WarnLevel,
		contracts.ErrorLevel:   zapcore.ErrorLevel,
		contracts.FatalLevel:   zapcore.FatalLevel,
		contracts.LogLevel(42): zapcore.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, toZapLevel(in), in.String())
	}
}

func TestSetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ump.log")

	z := NewZapLogger().(*ZapLogger)
	z.SetDestination(contracts.FileLog, path)
	z.Info("to file", z.Field().String("source", "keys"))
	require.NoError(t, z.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"to file"`)
	assert.Contains(t, string(data), `"source":"keys"`)
}

func TestSetDestinationFileWithoutPath(t *testing.T) {
	z, logs := newObserved(zapcore.InfoLevel)
	z.SetDestination(contracts.FileLog)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func messages(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}
