package cache

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func signedRefresh(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "typ": "Refresh"})
	s, err := tok.SignedString([]byte("any-key"))
	require.NoError(t, err)
	return s
}

func TestSessionStore_TTL(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	store := NewSessionStore(nil, 8*time.Hour)
	store.now = func() time.Time { return now }

	assert.Equal(t, flashOnlyTTL, store.ttlFor(&Session{}))
	assert.Equal(t, 8*time.Hour, store.ttlFor(&Session{AccessToken: "a"}))
	assert.Equal(t, 8*time.Hour, store.ttlFor(&Session{AccessToken: "a", RefreshToken: "not-a-jwt"}))

	refresh := signedRefresh(t, now.Add(30*time.Minute))
	assert.Equal(t, 30*time.Minute, store.ttlFor(&Session{AccessToken: "a", RefreshToken: refresh}))

	longLived := signedRefresh(t, now.Add(72*time.Hour))
	assert.Equal(t, 8*time.Hour, store.ttlFor(&Session{AccessToken: "a", RefreshToken: longLived}))
}

func TestSessionStore_KeyHidesID(t *testing.T) {
	store := NewSessionStore(nil, time.Hour)
	id := NewSessionID()

	key := store.buildKey(id)
	assert.NotContains(t, key, id)
	assert.Equal(t, key, store.buildKey(id))
	assert.Len(t, key, len(SessionKeyPrefix)+64)
}

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(setupTestRedis(t), time.Hour)
	ctx := context.Background()
	id := NewSessionID()

	missing, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Save(ctx, id, &Session{AccessToken: "a", RefreshToken: "r"}))
	sess, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.True(t, sess.Authenticated())

	require.NoError(t, store.AddFlash(ctx, id, "warning", "Session Expired, Please Login Again"))
	flashes, err := store.PopFlashes(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []Flash{{Level: "warning", Message: "Session Expired, Please Login Again"}}, flashes)

	flashes, err = store.PopFlashes(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, flashes)

	require.NoError(t, store.Destroy(ctx, id))
	sess, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sess)
}
