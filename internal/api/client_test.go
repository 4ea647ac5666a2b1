package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriramnat100/resumeoptimizer-sub000/handlers"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/devbackend"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
)

const testSecret = "api-client-test-secret-32-bytes-xx"

func init() { gin.SetMode(gin.TestMode) }

type cannedGenerator string

func (g cannedGenerator) Name() string { return "canned" }

func (g cannedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return string(g), nil
}

// newServer runs the documents API and the AI routes behind one listener.
func newServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	ver := tokens.NewVerifier(testSecret)
	g := gin.New()
	devbackend.RegisterRoutes(g, devbackend.New(), ver)
	conv := conversation.NewService(conversation.NewMemoryRepository(time.Hour), 20)
	handlers.RegisterAIRoutes(g, ai.NewService(cannedGenerator(reply), conv, 6), ver)
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, sub string) *Client {
	t.Helper()
	tok, err := tokens.Generate(testSecret, sub, "Tester", time.Minute)
	require.NoError(t, err)
	return New(srv.URL+"/", tok)
}

func TestDocumentsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newServer(t, ""), "alice")
	assert.True(t, c.HasToken())

	doc, err := c.CreateDocument(ctx, CreateDocumentRequest{Title: "Resume"})
	require.NoError(t, err)
	require.Len(t, doc.Sections, len(resume.CanonicalKinds))

	secs := doc.Sections
	secs[1] = secs[1].WithText("Go, SQL")
	updated, err := c.UpdateDocument(ctx, doc.ID, UpdateDocumentRequest{Title: "Resume v2", Sections: secs})
	require.NoError(t, err)
	assert.Equal(t, "Resume v2", updated.Title)

	got, err := c.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL", got.Sections[1].Text())
	assert.False(t, got.UpdatedAt.IsZero())

	docs, err := c.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	vs, err := c.ListVersions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, vs, 1)

	restored, err := c.RestoreVersion(ctx, doc.ID, vs[0].VersionNumber)
	require.NoError(t, err)
	assert.Equal(t, "Go, SQL", restored.Sections[1].Text())

	require.NoError(t, c.DeleteDocument(ctx, doc.ID))
	_, err = c.GetDocument(ctx, doc.ID)
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestLabelsRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newServer(t, ""), "bob")

	l, err := c.CreateLabel(ctx, LabelRequest{Name: "Tech", Color: resume.Green})
	require.NoError(t, err)

	_, err = c.CreateLabel(ctx, LabelRequest{Name: "Tech", Color: resume.Blue})
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "already exists")

	l, err = c.UpdateLabel(ctx, l.ID, LabelRequest{Name: "Engineering", Color: resume.Teal})
	require.NoError(t, err)
	assert.Equal(t, resume.Teal, l.Color)

	ls, err := c.ListLabels(ctx)
	require.NoError(t, err)
	assert.Len(t, ls, 1)
	require.NoError(t, c.DeleteLabel(ctx, l.ID))
}

func TestMissingTokenIsUnauthorized(t *testing.T) {
	srv := newServer(t, "")
	c := New(srv.URL, "")
	assert.False(t, c.HasToken())

	_, err := c.ListDocuments(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Contains(t, se.Error(), "missing Authorization header")

	// WithToken leaves the original untouched
	withTok := c.WithToken("x")
	assert.True(t, withTok.HasToken())
	assert.False(t, c.HasToken())
}

func TestChatReply(t *testing.T) {
	reply := "Tightened your skills line.\n{\"edits\": [{\"section\": \"Skills\", \"action\": \"replace\", \"find\": \"Go\", \"replace\": \"Go (5 years)\", \"reason\": \"quantify\"}]}"
	c := newClient(t, newServer(t, reply), "carol")

	got, err := c.Chat(context.Background(), ai.ChatRequest{Message: "improve my skills"})
	require.NoError(t, err)
	assert.Equal(t, "Tightened your skills line.", got.Message)
	require.Len(t, got.Edits, 1)
	assert.Equal(t, "Go (5 years)", got.Edits[0].Replace)

	st, err := c.AIStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Available)
	assert.Equal(t, "canned", st.Model)
}

func TestValidateReply(t *testing.T) {
	_, err := validateReply([]byte(`{"message": "hi"}`))
	assert.ErrorIs(t, err, ErrInvalidReply)

	_, err = validateReply([]byte(`{"message": "hi", "edits": [{"section": "Skills"}]}`))
	assert.ErrorIs(t, err, ErrInvalidReply)

	_, err = validateReply([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidReply)

	r, err := validateReply([]byte(`{"message": "hi", "edits": []}`))
	require.NoError(t, err)
	assert.Equal(t, "hi", r.Message)
	assert.Empty(t, r.Edits)
}

func TestErrorDetail(t *testing.T) {
	assert.Equal(t, "nope", errorDetail(`{"detail":"nope"}`))
	assert.Equal(t, "bad", errorDetail(`{"error":"bad"}`))
	assert.Equal(t, "plain text", errorDetail("plain text\n"))
}
