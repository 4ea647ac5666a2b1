package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
	"github.com/stretchr/testify/require"
)

// failingRepo returns err from every call
type failingRepo struct{ err error }

func (f failingRepo) Get(ctx context.Context, userID string) (*Context, error) { return nil, f.err }
func (f failingRepo) Put(ctx context.Context, c *Context) error               { return f.err }
func (f failingRepo) Delete(ctx context.Context, userID string) error         { return f.err }

func TestAppendAndTrim(t *testing.T) {
	svc := NewService(NewMemoryRepository(0), 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Append(ctx, "u1", Turn{Role: RoleUser, Content: fmt.Sprintf("m%d", i)})
		require.NoError(t, err)
	}
	c, err := svc.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, c.History, 3)
	require.Equal(t, "m2", c.History[0].Content)
	require.Equal(t, "m4", c.History[2].Content)
	require.False(t, c.History[0].At.IsZero())

	require.Equal(t, []Turn{c.History[2]}, c.Recent(1))
	require.Len(t, c.Recent(10), 3)
	require.Nil(t, c.Recent(0))
}

func TestAnonymousUserSharesContext(t *testing.T) {
	svc := NewService(NewMemoryRepository(0), 0)
	ctx := context.Background()
	_, err := svc.Append(ctx, "", Turn{Role: RoleUser, Content: "hi"})
	require.NoError(t, err)
	c, err := svc.Load(ctx, AnonymousUser)
	require.NoError(t, err)
	require.Len(t, c.History, 1)
}

func TestSetJobAndReset(t *testing.T) {
	svc := NewService(NewMemoryRepository(0), 0)
	ctx := context.Background()

	has, err := svc.HasJob(ctx, "u1")
	require.NoError(t, err)
	require.False(t, has)

	c, err := svc.SetJob(ctx, "u1", jobdesc.Description{Title: "SRE"})
	require.NoError(t, err)
	require.Equal(t, "SRE", c.Job.Title)
	require.Equal(t, RoleSystem, c.History[0].Role)
	require.Contains(t, c.History[0].Content, "Tailor experience for: SRE")

	has, err = svc.HasJob(ctx, "u1")
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, svc.Reset(ctx, "u1"))
	has, err = svc.HasJob(ctx, "u1")
	require.NoError(t, err)
	require.False(t, has)
}

func TestMemoryRepositoryExpiry(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &Context{UserID: "u", UpdatedAt: now}))
	got, err := repo.Get(ctx, "u")
	require.NoError(t, err)
	require.NotNil(t, got)

	repo.now = func() time.Time { return now.Add(2 * time.Minute) }
	got, err = repo.Get(ctx, "u")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestServiceWrapsRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(failingRepo{err: boom}, 0)
	_, err := svc.Append(context.Background(), "u", Turn{Role: RoleUser, Content: "x"})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "load conversation u")
}

func TestHistoryText(t *testing.T) {
	got := HistoryText([]Turn{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}})
	require.Equal(t, "User: hi\nAssistant: hello", got)
}
