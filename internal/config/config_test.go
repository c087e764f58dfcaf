package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "x-amz-secret", c.AdminSecretHeader)
	assert.Equal(t, int64(3072), c.MaxContentSizeBytes)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 14*24*time.Hour, c.SessionTTL)
	assert.False(t, c.Production())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("PUZZLE_FILE", "/etc/denker/puzzles.yaml")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", c.Port)
	assert.True(t, c.Production())
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, "/etc/denker/puzzles.yaml", c.PuzzleFile)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("MAX_CONTENT_SIZE_BYTES", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_CONTENT_SIZE_BYTES", "lots")
	_, err = Load()
	assert.Error(t, err)
}
