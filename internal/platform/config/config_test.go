package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.DBDSN)
	assert.True(t, cfg.EnforceProtocolWindows)
	assert.Equal(t, 10*time.Minute, cfg.LocalStateTTL)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
	assert.Equal(t, "litter-milestones", cfg.AppName)
	assert.False(t, cfg.OdinEnabled())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/milestones")
	t.Setenv("ENFORCE_PROTOCOL_WINDOWS", "false")
	t.Setenv("LOCAL_STATE_TTL", "90s")
	t.Setenv("ODIN_BASE_URL", "https://odin.local")
	t.Setenv("ODIN_API_KEY", "k")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "postgres://localhost/milestones", cfg.DBDSN)
	assert.False(t, cfg.EnforceProtocolWindows)
	assert.Equal(t, 90*time.Second, cfg.LocalStateTTL)
	assert.True(t, cfg.OdinEnabled())
}

func TestLoad_RejectsBadTTL(t *testing.T) {
	t.Setenv("LOCAL_STATE_TTL", "0s")
	_, err := Load()
	assert.Error(t, err)
}
