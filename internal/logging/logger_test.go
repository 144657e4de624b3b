package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "info")
	require.NoError(t, err)

	logger.Debug("hidden", nil)
	logger.Info("transaction submitted", Fields{"nonce": 7})

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "transaction submitted")
	assert.Contains(t, out, "nonce=7")
}

func TestLoggerInvalidLevel(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud")
	require.Error(t, err)
}
