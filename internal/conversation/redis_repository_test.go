package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_PutGetDelete(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	repo := NewRedisRepository(client, "test:conv:", time.Minute)
	ctx := context.Background()

	c := &Context{
		UserID:  "u1",
		Job:     &jobdesc.Description{Title: "SRE", Skills: []string{"Go"}},
		History: []Turn{{Role: RoleUser, Content: "hello"}},
	}
	require.NoError(t, repo.Put(ctx, c))
	require.True(t, m.Exists("test:conv:u1"))

	got, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "SRE", got.Job.Title)
	require.Equal(t, "hello", got.History[0].Content)

	require.NoError(t, repo.Delete(ctx, "u1"))
	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestRedisRepository_TTLExpiry(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	svc := NewService(NewRedisRepository(client, "", time.Second), 0)
	ctx := context.Background()

	_, err = svc.Append(ctx, "u2", Turn{Role: RoleUser, Content: "hi"})
	require.NoError(t, err)

	m.FastForward(2 * time.Second)

	c, err := svc.Load(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, c.History)
}
