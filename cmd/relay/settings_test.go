package main

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		settings, err := parseSettings(env.EnvSet{})

		require.NoError(t, err)
		assert.Equal(t, 5000, settings.Port)
		assert.Equal(t, "", settings.BasePath)
		assert.Equal(t, []string{"*"}, settings.Origins())
		assert.Equal(t, "console", settings.LogEncoding)
		assert.Equal(t, 256, settings.SendBufferSize)
		assert.Equal(t, int64(65536), settings.MaxFrameSize)
		assert.Equal(t, 30*time.Second, settings.ShutdownTimeout)
	})

	t.Run("overrides", func(t *testing.T) {
		settings, err := parseSettings(env.EnvSet{
			"PORT":            "8080",
			"ALLOWED_ORIGINS": "http://localhost:3000,https://relay.example",
			"LOG_ENCODING":    "json",
		})

		require.NoError(t, err)
		assert.Equal(t, 8080, settings.Port)
		assert.Equal(t, []string{"http://localhost:3000", "https://relay.example"}, settings.Origins())
		assert.Equal(t, "json", settings.LogEncoding)
	})

	t.Run("invalid port", func(t *testing.T) {
		_, err := parseSettings(env.EnvSet{"PORT": "70000"})

		assert.Error(t, err)
	})

	t.Run("unknown log encoding", func(t *testing.T) {
		_, err := parseSettings(env.EnvSet{"LOG_ENCODING": "xml"})

		assert.Error(t, err)
	})
}
