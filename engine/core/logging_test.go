package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		level LogLevel
	}{
		{"debug", LogLevelDebug},
		{"", LogLevelInfo},
		{"INFO", LogLevelInfo},
		{"warning", LogLevelWarn},
		{" error ", LogLevelError},
		{"fatal", LogLevelFatal},
	}
	for _, tt := range tests {
		level, err := ParseLogLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.level, level, tt.input)
	}

	level, err := ParseLogLevel("chatty")
	assert.Error(t, err)
	assert.Equal(t, LogLevelInfo, level)
	assert.Equal(t, "warn", LogLevelWarn.String())
}

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel(LogLevelInfo)
	SetLogLevel(LogLevelError)
	assert.Equal(t, LogLevelError.charm(), getLogger().GetLevel())
}
