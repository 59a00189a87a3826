package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVs_RedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"username", "admin", "password", "hunter2", "session_token", "abc", "dangling"})

	assert.Equal(t, []interface{}{"username", "admin", "password", "[REDACTED]", "session_token", "[REDACTED]", "dangling"}, out)
}
