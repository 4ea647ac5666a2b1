package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriramnat100/resumeoptimizer-sub000/handlers"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/devbackend"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/tokens"
)

const testSecret = "resumectl-test-secret-32-bytes-xxx"

func init() { gin.SetMode(gin.TestMode) }

type cannedGenerator string

func (g cannedGenerator) Name() string { return "canned" }

func (g cannedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return string(g), nil
}

type harness struct {
	url   string
	token string
}

func newHarness(t *testing.T, reply string) harness {
	t.Helper()
	ver := tokens.NewVerifier(testSecret)
	g := gin.New()
	devbackend.RegisterRoutes(g, devbackend.New(), ver)
	conv := conversation.NewService(conversation.NewMemoryRepository(time.Hour), 20)
	handlers.RegisterAIRoutes(g, ai.NewService(cannedGenerator(reply), conv, 6), ver)
	srv := httptest.NewServer(g)
	t.Cleanup(srv.Close)

	tok, err := tokens.Generate(testSecret, "cli-user", "CLI", time.Minute)
	require.NoError(t, err)
	return harness{url: srv.URL, token: tok}
}

func (h harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--backend", h.url, "--token", h.token}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestDocsCommands(t *testing.T) {
	h := newHarness(t, "")

	out, err := h.run(t, "docs", "create", "Backend Resume")
	require.NoError(t, err)
	assert.Contains(t, out, "created Backend Resume")

	out, err = h.run(t, "docs", "list", "-o", "json")
	require.NoError(t, err)
	var docs []resume.Document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	id := docs[0].ID

	out, err = h.run(t, "docs", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "PERSONAL INFORMATION")
	assert.Contains(t, out, "[placeholder]")

	skills := docs[0].Sections[1].ID
	out, err = h.run(t, "docs", "move", id, skills, "down", "-o", "json")
	require.NoError(t, err)
	var moved resume.Document
	require.NoError(t, json.Unmarshal([]byte(out), &moved))
	assert.Equal(t, resume.Education, moved.Sections[1].Title)

	out, err = h.run(t, "docs", "versions", id)
	require.NoError(t, err)
	assert.Contains(t, out, "v1")

	_, err = h.run(t, "docs", "move", id, skills, "sideways")
	assert.Error(t, err)

	out, err = h.run(t, "docs", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted "+id)
}

func TestLabelsCommands(t *testing.T) {
	h := newHarness(t, "")

	out, err := h.run(t, "labels", "create", "Work", "green", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Work")

	_, err = h.run(t, "labels", "create", "Bad", "mauve")
	assert.Error(t, err)

	out, err = h.run(t, "labels", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "All documents")
	assert.Contains(t, out, "Work")
}

func TestLabelsDeleteUnlabelsDocuments(t *testing.T) {
	h := newHarness(t, "")

	out, err := h.run(t, "labels", "create", "Tech", "green", "-o", "json")
	require.NoError(t, err)
	var l resume.Label
	require.NoError(t, json.Unmarshal([]byte(out), &l))

	_, err = h.run(t, "docs", "create", "Tagged", "--label", l.ID)
	require.NoError(t, err)

	out, err = h.run(t, "labels", "delete", l.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "unlabeled documents: 1")
}

func TestStoresClearDeletedLabel(t *testing.T) {
	h := newHarness(t, "")
	a := &app{v: viper.New()}
	a.v.Set("backend", h.url)
	a.v.Set("token", h.token)
	ctx := context.Background()

	docs, ls := a.stores()
	tech, err := ls.Create(ctx, "Tech", resume.Green)
	require.NoError(t, err)
	design, err := ls.Create(ctx, "Design", resume.Pink)
	require.NoError(t, err)
	for _, title := range []string{"A", "B", "C"} {
		_, err = docs.Create(ctx, title, tech.ID)
		require.NoError(t, err)
	}
	_, err = docs.Create(ctx, "D", design.ID)
	require.NoError(t, err)

	// no refetch: the local list is cleared by the delete hook
	require.NoError(t, ls.Delete(ctx, tech.ID))
	got := map[string]string{}
	for _, d := range docs.Documents() {
		got[d.Title] = d.Label
	}
	assert.Equal(t, map[string]string{
		"A": resume.NoLabel,
		"B": resume.NoLabel,
		"C": resume.NoLabel,
		"D": design.ID,
	}, got)
}

func TestChatApply(t *testing.T) {
	reply := "Swap Java for Go.\n{\"edits\": [{\"section\": \"Skills\", \"action\": \"replace\", \"find\": \"Java,\", \"replace\": \"Go,\", \"reason\": \"match the role\"}]}"
	h := newHarness(t, reply)

	out, err := h.run(t, "docs", "create", "Resume", "-o", "json")
	require.NoError(t, err)
	var doc resume.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	out, err = h.run(t, "chat", doc.ID, "improve", "my", "skills", "--apply", "0", "-o", "json")
	require.NoError(t, err)
	var res struct {
		Route     string `json:"route"`
		Message   string `json:"message"`
		Proposals []struct {
			Replace string `json:"replace"`
			State   string `json:"state"`
		} `json:"proposals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "backend", res.Route)
	assert.Equal(t, "Swap Java for Go.", res.Message)
	require.Len(t, res.Proposals, 1)
	assert.Equal(t, "accepted", res.Proposals[0].State)

	out, err = h.run(t, "docs", "show", doc.ID, "-o", "json")
	require.NoError(t, err)
	var saved resume.Document
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	i, ok := saved.FindSection("Skills")
	require.True(t, ok)
	assert.Contains(t, saved.Sections[i].Text(), "Python, Go, C++")
}

func TestTokenCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"token", "alice", "--secret", testSecret, "--name", "Alice"})
	require.NoError(t, cmd.Execute())

	claims, err := tokens.Parse(testSecret, string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
}

func TestUnknownOutputFormat(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", "xml", "token", "x", "--secret", testSecret})
	assert.Error(t, cmd.Execute())
}
