package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karishma-rtctek/Fullstack-Ecommerce/internal/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "test-secret"}

	token, err := GenerateToken(cfg, 42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(&config.JWTConfig{Secret: "secret-a"}, 42, "alice")
	require.NoError(t, err)

	_, err = ParseToken(&config.JWTConfig{Secret: "secret-b"}, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(&config.JWTConfig{Secret: "test-secret"}, "not.a.token")
	assert.Error(t, err)
}

func TestRing_StableAssignment(t *testing.T) {
	ring := NewRing([]string{"node-1", "node-2", "node-3"}, 50)

	first := ring.Pick("some-jwt-token")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ring.Pick("some-jwt-token"))
	}
}

func TestRing_EmptyNodesFallback(t *testing.T) {
	ring := NewRing(nil, 0)
	assert.NotEmpty(t, ring.Pick("key"))
}

func TestSessionCache_NilRedisMisses(t *testing.T) {
	cache := NewSessionCache(nil, NewRing(nil, 0), 0)

	_, hit, err := cache.Get(context.Background(), "token")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, cache.Set(context.Background(), "token", &Claims{UserID: 1}))
}
