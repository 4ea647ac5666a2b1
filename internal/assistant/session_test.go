package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

const posting = `Senior Backend Engineer
We are hiring a senior engineer for a remote, full-time position.
Responsibilities include building APIs.
Skills: Go, PostgreSQL, Kubernetes
Requirements: 5+ years of experience with distributed systems`

type fakeBackend struct {
	available bool
	statusErr error
	chatErr   error
	reply     ai.Reply
	statuses  int
	chats     []ai.ChatRequest
	sections  []ai.SectionRequest
	ats       []ai.ATSRequest
}

func (f *fakeBackend) AIStatus(ctx context.Context) (ai.Status, error) {
	f.statuses++
	return ai.Status{Available: f.available}, f.statusErr
}

func (f *fakeBackend) Chat(ctx context.Context, req ai.ChatRequest) (ai.Reply, error) {
	f.chats = append(f.chats, req)
	return f.reply, f.chatErr
}

func (f *fakeBackend) AnalyzeSection(ctx context.Context, req ai.SectionRequest) (ai.Reply, error) {
	f.sections = append(f.sections, req)
	return f.reply, f.chatErr
}

func (f *fakeBackend) ATS(ctx context.Context, req ai.ATSRequest) (ai.Reply, error) {
	f.ats = append(f.ats, req)
	return f.reply, f.chatErr
}

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
}

func (g *fakeGenerator) Name() string { return "fake" }

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	return g.out, g.err
}

// fakeDocs applies edits with the real engine to an in-memory document.
type fakeDocs struct {
	doc     *resume.Document
	saveErr error
}

func (f *fakeDocs) Current() (resume.Document, bool) {
	if f.doc == nil {
		return resume.Document{}, false
	}
	return f.doc.Clone(), true
}

func (f *fakeDocs) ApplyEdit(ctx context.Context, p edit.Proposal) (resume.Document, error) {
	next, err := edit.Apply(*f.doc, p)
	if err != nil {
		return resume.Document{}, err
	}
	if f.saveErr != nil {
		return resume.Document{}, f.saveErr
	}
	f.doc = &next
	return next, nil
}

func sampleDocs() *fakeDocs {
	secs := resume.DefaultSections()
	secs[1] = secs[1].WithText("Python, Java")
	return &fakeDocs{doc: &resume.Document{ID: "d1", Title: "Resume", Sections: secs}}
}

const editReply = "Swap Java for Go.\n{\"edits\": [{\"section\": \"Skills\", \"action\": \"replace\", \"find\": \"Java\", \"replace\": \"Go\", \"reason\": \"match the role\"}, {\"section\": \"Skills\", \"action\": \"replace\", \"find\": \"Cobol\", \"replace\": \"Rust\", \"reason\": \"r\"}]}"

func TestSendUsesBackendWhenAvailable(t *testing.T) {
	be := &fakeBackend{available: true, reply: ai.Reply{Message: "from backend", Edits: []edit.Proposal{{Section: "Skills", Action: edit.ActionAdd, Addition: "Go"}}}}
	gen := &fakeGenerator{out: "unused"}
	s := New(Options{Backend: be, Direct: gen, Documents: sampleDocs()})

	reply, route, err := s.Send(context.Background(), "improve my skills")
	require.NoError(t, err)
	assert.Equal(t, RouteBackend, route)
	assert.Equal(t, "from backend", reply.Message)
	require.Len(t, be.chats, 1)
	require.NotNil(t, be.chats[0].ResumeData)
	assert.Equal(t, "d1", be.chats[0].ResumeData.ID)
	assert.Empty(t, gen.prompts)
	assert.Len(t, s.Proposals(), 1)

	_, _, err = s.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, 1, be.statuses, "status is cached")
	assert.False(t, s.Busy())
}

func TestSendFallsBackToDirect(t *testing.T) {
	be := &fakeBackend{available: false}
	gen := &fakeGenerator{out: editReply}
	s := New(Options{Backend: be, Direct: gen, Documents: sampleDocs()})

	reply, route, err := s.Send(context.Background(), "improve my skills")
	require.NoError(t, err)
	assert.Equal(t, RouteDirect, route)
	assert.Equal(t, "Swap Java for Go.", reply.Message)
	assert.Len(t, reply.Edits, 2)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Python, Java")
	assert.Empty(t, be.chats)

	// the second prompt carries the first exchange as history
	_, _, err = s.Send(context.Background(), "anything else?")
	require.NoError(t, err)
	assert.Contains(t, gen.prompts[1], "CONVERSATION HISTORY")
	assert.Contains(t, gen.prompts[1], "User: improve my skills")
}

func TestSendBackendErrorTriesDirect(t *testing.T) {
	be := &fakeBackend{available: true, chatErr: errors.New("502")}
	gen := &fakeGenerator{out: "ok\n{\"edits\": []}"}
	s := New(Options{Backend: be, Direct: gen})

	reply, route, err := s.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, RouteDirect, route)
	assert.Equal(t, "ok", reply.Message)
}

func TestSendFallbackWhenNothingWorks(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota")}
	s := New(Options{Direct: gen})

	reply, route, err := s.Send(context.Background(), "how do I beat the ats?")
	require.NoError(t, err)
	assert.Equal(t, RouteFallback, route)
	assert.Equal(t, ai.FallbackMessage("how do I beat the ats?"), reply.Message)
	assert.Empty(t, reply.Edits)

	s = New(Options{})
	_, route, err = s.Send(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, RouteFallback, route)
}

func TestSendEmptyMessage(t *testing.T) {
	s := New(Options{})
	_, _, err := s.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ai.ErrEmptyMessage)
}

func TestDirectJobDescriptionIsRemembered(t *testing.T) {
	gen := &fakeGenerator{out: "ok\n{\"edits\": []}"}
	s := New(Options{Direct: gen, Documents: sampleDocs()})

	reply, route, err := s.Send(context.Background(), posting)
	require.NoError(t, err)
	assert.Equal(t, RouteDirect, route)
	assert.True(t, strings.HasPrefix(reply.Message, JobSavedPrefix))
	assert.Contains(t, reply.Message, "Go")
	assert.Empty(t, reply.Edits)
	assert.Empty(t, gen.prompts, "no model call for a posting")

	job, ok := s.Job(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Senior Backend Engineer", job.Title)

	_, _, err = s.Send(context.Background(), "tailor my skills")
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "JOB DESCRIPTION CONTEXT")

	require.NoError(t, s.Reset(context.Background()))
	_, ok = s.Job(context.Background())
	assert.False(t, ok)
}

func TestAcceptAndReject(t *testing.T) {
	docs := sampleDocs()
	s := New(Options{Direct: &fakeGenerator{out: editReply}, Documents: docs})
	_, _, err := s.Send(context.Background(), "improve my skills")
	require.NoError(t, err)

	d, err := s.Accept(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Python, Go", d.Sections[1].Text())

	_, err = s.Accept(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = s.Accept(context.Background(), 1)
	assert.ErrorIs(t, err, edit.ErrTextNotFound)
	ps := s.Proposals()
	assert.Equal(t, Accepted, ps[0].State)
	assert.Equal(t, Failed, ps[1].State)
	assert.Error(t, ps[1].Err)
	assert.Equal(t, "Python, Go", docs.doc.Sections[1].Text())

	_, err = s.Accept(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNoProposal)
	assert.ErrorIs(t, s.Reject(1), ErrNotPending)
}

func TestRejectLeavesDocument(t *testing.T) {
	docs := sampleDocs()
	s := New(Options{Direct: &fakeGenerator{out: editReply}, Documents: docs})
	_, _, err := s.Send(context.Background(), "improve my skills")
	require.NoError(t, err)

	require.NoError(t, s.Reject(0))
	assert.Equal(t, Rejected, s.Proposals()[0].State)
	assert.Equal(t, "Python, Java", docs.doc.Sections[1].Text())

	// a new reply replaces the proposals
	_, _, err = s.Send(context.Background(), "more")
	require.NoError(t, err)
	assert.Equal(t, Pending, s.Proposals()[0].State)
}

func TestAcceptSaveFailureMarksFailed(t *testing.T) {
	docs := sampleDocs()
	docs.saveErr = errors.New("backend down")
	s := New(Options{Direct: &fakeGenerator{out: editReply}, Documents: docs})
	_, _, _ = s.Send(context.Background(), "improve my skills")

	_, err := s.Accept(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, Failed, s.Proposals()[0].State)
	assert.Equal(t, "Python, Java", docs.doc.Sections[1].Text())
}

func TestAnalyzeSectionAndATS(t *testing.T) {
	docs := sampleDocs()
	be := &fakeBackend{available: true, reply: ai.Reply{Message: "fine", Edits: []edit.Proposal{}}}
	s := New(Options{Backend: be, Documents: docs})

	_, route, err := s.AnalyzeSection(context.Background(), docs.doc.Sections[1].ID, "is this good?")
	require.NoError(t, err)
	assert.Equal(t, RouteBackend, route)
	require.Len(t, be.sections, 1)
	assert.Equal(t, "Python, Java", be.sections[0].SectionContent)

	_, _, err = s.AnalyzeSection(context.Background(), "missing", "q")
	assert.ErrorIs(t, err, resume.ErrSectionNotFound)

	_, route, err = s.ATS(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, RouteBackend, route)
	require.Len(t, be.ats, 1)

	none := New(Options{})
	_, _, err = none.ATS(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestDirectSectionPrompt(t *testing.T) {
	docs := sampleDocs()
	gen := &fakeGenerator{out: "ok\n{\"edits\": []}"}
	s := New(Options{Direct: gen, Documents: docs})

	_, route, err := s.AnalyzeSection(context.Background(), docs.doc.Sections[1].ID, "rate it")
	require.NoError(t, err)
	assert.Equal(t, RouteDirect, route)
	assert.Contains(t, gen.prompts[0], "USER QUESTION: rate it")
}

func TestStatusErrorIsNotCached(t *testing.T) {
	be := &fakeBackend{available: true, statusErr: errors.New("refused")}
	s := New(Options{Backend: be})
	_, _, _ = s.Send(context.Background(), "hi")
	_, _, _ = s.Send(context.Background(), "hi")
	assert.Equal(t, 2, be.statuses)

	be.statusErr = nil
	_, route, _ := s.Send(context.Background(), "hi")
	assert.Equal(t, RouteBackend, route)
	s.Refresh()
	_, _, _ = s.Send(context.Background(), "hi")
	assert.Equal(t, 4, be.statuses)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "State(9)", State(9).String())
}
