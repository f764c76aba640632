package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]interface{}{"username", "renzo", "password", "lucia", "Authorization", "Bearer x", "dangling"})
	assert.Equal(t, []interface{}{"username", "renzo", "password", "[REDACTED]", "Authorization", "[REDACTED]", "dangling"}, out)
}

func TestInitLogger(t *testing.T) {
	log, err := InitLogger(LoggerConfig{Mode: "production", Level: "warn"})
	require.NoError(t, err)
	assert.NotNil(t, log.With("component", "test"))

	_, err = InitLogger(LoggerConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestNopLoggerSync(t *testing.T) {
	assert.NoError(t, NewNopLogger().Sync())
}
