package labels

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/api"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/devbackend"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
)

const testSecret = "labels-test-secret-32-bytes-xxxxxx"

func init() { gin.SetMode(gin.TestMode) }

func newClient(t *testing.T) (*api.Client, *devbackend.Backend) {
	t.Helper()
	b := devbackend.New()
	g := gin.New()
	devbackend.RegisterRoutes(g, b, tokens.NewVerifier(testSecret))
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	tok, err := tokens.Generate(testSecret, "u1", "Tester", time.Minute)
	require.NoError(t, err)
	return api.New(srv.URL, tok), b
}

func TestFetchWithoutTokenIsEmpty(t *testing.T) {
	c, _ := newClient(t)
	s := NewStore(c.WithToken(""))
	require.NoError(t, s.Fetch(context.Background()))
	assert.Empty(t, s.Labels())
	assert.Equal(t, All, s.Selected())
}

func TestFetchBootstrapsDefaultLabel(t *testing.T) {
	c, b := newClient(t)
	s := NewStore(c)
	require.NoError(t, s.Fetch(context.Background()))

	ls := s.Labels()
	require.Len(t, ls, 1)
	assert.Equal(t, DefaultName, ls[0].Name)
	assert.Equal(t, resume.Blue, ls[0].Color)
	assert.Equal(t, ls[0].ID, s.Selected())
	assert.Len(t, b.ListLabels("u1"), 1)

	// a second fetch finds it and creates nothing
	require.NoError(t, s.Fetch(context.Background()))
	assert.Len(t, b.ListLabels("u1"), 1)
	assert.False(t, s.Busy())
}

func TestCreateValidatesBeforeRequest(t *testing.T) {
	fb := &fakeBackend{}
	s := NewStore(fb)

	_, err := s.Create(context.Background(), "   ", resume.Green)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = s.Create(context.Background(), "Tech", "magenta")
	assert.ErrorIs(t, err, ErrInvalidColor)
	assert.Zero(t, fb.calls)
}

func TestCreateTrimsName(t *testing.T) {
	c, _ := newClient(t)
	s := NewStore(c)
	l, err := s.Create(context.Background(), "  Tech  ", resume.Green)
	require.NoError(t, err)
	assert.Equal(t, "Tech", l.Name)
	assert.Len(t, s.Labels(), 1)

	_, err = s.Create(context.Background(), "Tech", resume.Red)
	assert.True(t, api.IsStatus(err, 400))
	assert.Len(t, s.Labels(), 1)
}

func TestUpdateReplacesInList(t *testing.T) {
	c, _ := newClient(t)
	s := NewStore(c)
	l, err := s.Create(context.Background(), "Tech", resume.Green)
	require.NoError(t, err)

	_, err = s.Update(context.Background(), l.ID, "Engineering", resume.Purple)
	require.NoError(t, err)
	got, ok := s.Get(l.ID)
	require.True(t, ok)
	assert.Equal(t, "Engineering", got.Name)
	assert.Equal(t, resume.Purple, got.Color)
}

func TestDeleteResetsSelectionAndRunsHooks(t *testing.T) {
	c, _ := newClient(t)
	s := NewStore(c)
	keep, _ := s.Create(context.Background(), "Keep", resume.Green)
	gone, _ := s.Create(context.Background(), "Gone", resume.Red)
	require.NoError(t, s.Select(gone.ID))

	var cleared []string
	s.OnDelete(func(id string) { cleared = append(cleared, id) })

	require.NoError(t, s.Delete(context.Background(), gone.ID))
	assert.Equal(t, All, s.Selected())
	assert.Equal(t, []string{gone.ID}, cleared)
	ls := s.Labels()
	require.Len(t, ls, 1)
	assert.Equal(t, keep.ID, ls[0].ID)

	// deleting an unselected label keeps the selection
	require.NoError(t, s.Select(keep.ID))
	other, _ := s.Create(context.Background(), "Other", resume.Cyan)
	require.NoError(t, s.Delete(context.Background(), other.ID))
	assert.Equal(t, keep.ID, s.Selected())
}

func TestDeleteFailureKeepsState(t *testing.T) {
	fb := &fakeBackend{err: errors.New("down")}
	s := NewStore(fb)
	s.labels = []resume.Label{{ID: "l1", Name: "Tech", Color: resume.Blue}}
	require.NoError(t, s.Select("l1"))
	hooked := false
	s.OnDelete(func(string) { hooked = true })

	require.Error(t, s.Delete(context.Background(), "l1"))
	assert.Len(t, s.Labels(), 1)
	assert.Equal(t, "l1", s.Selected())
	assert.False(t, hooked)
}

func TestFetchFailureKeepsPriorList(t *testing.T) {
	fb := &fakeBackend{err: errors.New("down")}
	s := NewStore(fb)
	s.labels = []resume.Label{{ID: "l1", Name: "Tech", Color: resume.Blue}}
	require.Error(t, s.Fetch(context.Background()))
	assert.Len(t, s.Labels(), 1)
	assert.False(t, s.Busy())
}

func TestSelectUnknown(t *testing.T) {
	s := NewStore(&fakeBackend{})
	assert.ErrorIs(t, s.Select("nope"), ErrNotFound)
	assert.NoError(t, s.Select(All))
}

func TestFilterAndCounts(t *testing.T) {
	docs := []resume.Document{
		{ID: "1", Label: "a"},
		{ID: "2", Label: "a"},
		{ID: "3", Label: "b"},
		{ID: "4", Label: resume.NoLabel},
	}
	assert.Len(t, FilterBy(docs, All), 4)
	assert.Len(t, FilterBy(docs, "a"), 2)
	assert.Empty(t, FilterBy(docs, "zzz"))

	counts := Counts(docs)
	assert.Equal(t, 4, counts[All])
	assert.Equal(t, 2, counts["a"])
	assert.Equal(t, 1, counts["b"])
	_, hasEmpty := counts[resume.NoLabel]
	assert.False(t, hasEmpty)

	s := NewStore(&fakeBackend{})
	s.labels = []resume.Label{{ID: "b"}}
	require.NoError(t, s.Select("b"))
	got := s.Filter(docs)
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

type fakeBackend struct {
	err   error
	calls int
}

func (f *fakeBackend) HasToken() bool { return true }

func (f *fakeBackend) ListLabels(ctx context.Context) ([]resume.Label, error) {
	f.calls++
	return nil, f.err
}

func (f *fakeBackend) CreateLabel(ctx context.Context, req api.LabelRequest) (resume.Label, error) {
	f.calls++
	return resume.Label{ID: "new", Name: req.Name, Color: req.Color}, f.err
}

func (f *fakeBackend) UpdateLabel(ctx context.Context, id string, req api.LabelRequest) (resume.Label, error) {
	f.calls++
	return resume.Label{ID: id, Name: req.Name, Color: req.Color}, f.err
}

func (f *fakeBackend) DeleteLabel(ctx context.Context, id string) error {
	f.calls++
	return f.err
}
