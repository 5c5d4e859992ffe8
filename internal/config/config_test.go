package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "RUN_LOCAL", "STORE_BACKEND", "STORE_TIMEOUT", "HANDOFF_QUEUE_URL", "IDEMPOTENCY_TTL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.False(t, cfg.RunLocal)
	require.Equal(t, BackendMemory, cfg.StoreBackend)
	require.Equal(t, 5*time.Second, cfg.StoreTimeout)
	require.Equal(t, 48*time.Hour, cfg.IdempotencyTTL)
	require.False(t, cfg.NeedsAWS())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RUN_LOCAL", "true")
	t.Setenv("STORE_BACKEND", "DynamoDB")
	t.Setenv("STORE_TABLE", "collections")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("IDEMPOTENCY_TTL", "not-a-duration")
	t.Setenv("HANDOFF_QUEUE_URL", "https://sqs.local/000/handoff")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.True(t, cfg.RunLocal)
	require.Equal(t, BackendDynamoDB, cfg.StoreBackend)
	require.Equal(t, "collections", cfg.StoreTable)
	require.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	require.Equal(t, 48*time.Hour, cfg.IdempotencyTTL)
	require.True(t, cfg.NeedsAWS())
}

func TestLoad_UnknownBackendFallsBackToMemory(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	require.Equal(t, BackendMemory, Load().StoreBackend)
}
