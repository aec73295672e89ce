package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
	return entry
}

func TestNewWithOutput_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, buf *bytes.Buffer)
	}{
		{
			name:   "json carries service and time",
			format: "json",
			check: func(t *testing.T, buf *bytes.Buffer) {
				entry := decodeEntry(t, buf)
				assert.Equal(t, "info", entry["level"])
				assert.Equal(t, "precalculation done", entry["message"])
				assert.Equal(t, "yqyr-test", entry["service"])
				assert.NotEmpty(t, entry["time"])
			},
		},
		{
			name:   "console is human readable",
			format: "console",
			check: func(t *testing.T, buf *bytes.Buffer) {
				assert.Contains(t, buf.String(), "precalculation done")
				assert.Contains(t, buf.String(), "INF")
				assert.False(t, strings.HasPrefix(buf.String(), "{"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithOutput(Config{Level: "info", Format: tt.format, ServiceName: "yqyr-test"}, &buf)

			l.Info().Msg("precalculation done")

			tt.check(t, &buf)
		})
	}
}

func TestNewWithOutput_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"unknown falls back to info", "chatty", zerolog.InfoLevel},
		{"empty falls back to info", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewWithOutput(Config{Level: tt.level}, &bytes.Buffer{})
			assert.Equal(t, tt.wantLevel, l.GetLevel())
		})
	}
}

func TestNewWithOutput_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(Config{Level: "warn"}, &buf)

	l.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	l.Warn().Msg("kept")
	assert.Equal(t, "kept", decodeEntry(t, &buf)["message"])
}

func TestNewWithOutput_DefaultServiceAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput(Config{Level: "info", EnableCaller: true}, &buf)

	l.Info().Msg("with caller")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, ServiceName, entry["service"])
	assert.Contains(t, entry["caller"], "logger_test.go")
}

func TestContextHelpers(t *testing.T) {
	tests := []struct {
		name  string
		child func(zerolog.Logger) zerolog.Logger
		want  map[string]string
	}{
		{
			name:  "transaction",
			child: func(l zerolog.Logger) zerolog.Logger { return ForTransaction(l, "trx-42") },
			want:  map[string]string{FieldTransactionID: "trx-42"},
		},
		{
			name:  "passenger type",
			child: func(l zerolog.Logger) zerolog.Logger { return ForPaxType(l, "CNN") },
			want:  map[string]string{FieldPaxType: "CNN"},
		},
		{
			name:  "carrier and fee code",
			child: func(l zerolog.Logger) zerolog.Logger { return ForCarrier(l, "LH", "YQF") },
			want:  map[string]string{FieldCarrier: "LH", "tax_code": "YQF"},
		},
		{
			name: "helpers stack",
			child: func(l zerolog.Logger) zerolog.Logger {
				return ForPaxType(ForTransaction(l, "trx-7"), "ADT")
			},
			want: map[string]string{FieldTransactionID: "trx-7", FieldPaxType: "ADT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := NewWithOutput(Config{Level: "debug"}, &buf)

			child := tt.child(base.Logger)
			child.Debug().Msg("tagged")

			entry := decodeEntry(t, &buf)
			for k, v := range tt.want {
				assert.Equal(t, v, entry[k], k)
			}
		})
	}
}

func TestContextHelpers_LeaveParentUntouched(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithOutput(Config{Level: "info"}, &buf)

	_ = ForTransaction(base.Logger, "trx-1")
	base.Info().Msg("parent")

	assert.NotContains(t, decodeEntry(t, &buf), FieldTransactionID)
}

func TestNop(t *testing.T) {
	l := Nop()
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, ServiceName, cfg.ServiceName)
	assert.False(t, cfg.EnableCaller)
}

func TestSetGlobal(t *testing.T) {
	prevGlobal, prevLog := Global, log.Logger
	t.Cleanup(func() {
		Global = prevGlobal
		log.Logger = prevLog
	})

	var buf bytes.Buffer
	l := NewWithOutput(Config{Level: "info", ServiceName: "global-test"}, &buf)
	SetGlobal(l)

	assert.Same(t, l, Global)
	log.Info().Msg("via zerolog/log")
	assert.Equal(t, "global-test", decodeEntry(t, &buf)["service"])
}
