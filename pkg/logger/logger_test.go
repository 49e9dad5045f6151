package logger

import (
	"bytes"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"loud", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: "warn", Format: FormatJSON})

	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Warn().Str("schema", "final").Msg("shown")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "final", line["schema"])
	assert.Equal(t, "geofeed-validator", line["app"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: "bogus"})

	l.Debug().Msg("hidden")
	l.Info().Msg("validated")
	assert.Contains(t, buf.String(), "validated")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestDefault(t *testing.T) {
	old := Default()
	t.Cleanup(func() { SetDefault(old) })
	assert.Equal(t, zerolog.Disabled, old.GetLevel())

	var buf bytes.Buffer
	SetDefault(New(&buf, Options{Format: FormatJSON}))
	l := Default()
	l.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")

	SetDefault(Nop())
	l = Default()
	l.Error().Msg("nothing")
	assert.NotContains(t, buf.String(), "nothing")
}
