package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestValidateOutput(t *testing.T) {
	for _, o := range []string{OutputText, OutputJSON, OutputYAML} {
		assert.NoError(t, ValidateOutput(o))
	}
	assert.Error(t, ValidateOutput("xml"))
}

func TestNewLogger(t *testing.T) {
	verbose, err := NewLogger(true)
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))

	quiet, err := NewLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.Core().Enabled(zapcore.WarnLevel))
}
