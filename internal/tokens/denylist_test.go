package tokens

import (
	"context"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenylistRedis(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	d := NewDenylist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	ctx := context.Background()

	require.NoError(t, d.Add(ctx, "tok-1", 2*time.Second))
	ok, err := d.Contains(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	m.FastForward(3 * time.Second)
	ok, err = d.Contains(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDenylistLocal(t *testing.T) {
	d := NewDenylist(nil)
	now := time.Unix(1_700_000_000, 0)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, d.Add(ctx, "tok", time.Minute))
	require.NoError(t, d.Add(ctx, "expired", 0))

	ok, _ := d.Contains(ctx, "tok")
	assert.True(t, ok)
	ok, _ = d.Contains(ctx, "expired")
	assert.False(t, ok)

	now = now.Add(time.Minute)
	ok, _ = d.Contains(ctx, "tok")
	assert.False(t, ok)
}

func TestVerifierRevoke(t *testing.T) {
	ctx := context.Background()
	v := NewVerifier(secret)
	tok, err := Generate(secret, "u1", "", time.Hour)
	require.NoError(t, err)
	assert.Error(t, v.Revoke(ctx, tok), "revocation without a denylist")

	v.WithDenylist(NewDenylist(nil))
	_, err = v.Verify(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, v.Revoke(ctx, tok))
	_, err = v.Verify(ctx, tok)
	assert.ErrorIs(t, err, ErrRevoked)

	assert.Error(t, v.Revoke(ctx, "garbage"))
}
