// Package assistant runs the client side of an AI conversation: it sends the
// user's message with the open document to the backend AI service, or to a
// generator directly when the backend has none, and tracks what the user did
// with each suggested edit.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/ai"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
)

// JobSavedPrefix opens the reply to a pasted job posting on the direct path.
const JobSavedPrefix = "✅ Job description saved! I'll use this to tailor my advice.\n\nKey points:\n"

var (
	ErrNoProposal  = errors.New("no such proposal")
	ErrNotPending  = errors.New("proposal already handled")
	ErrNoDocuments = errors.New("no document store attached")
)

// Backend is the AI half of the REST client.
type Backend interface {
	AIStatus(ctx context.Context) (ai.Status, error)
	Chat(ctx context.Context, req ai.ChatRequest) (ai.Reply, error)
	AnalyzeSection(ctx context.Context, req ai.SectionRequest) (ai.Reply, error)
	ATS(ctx context.Context, req ai.ATSRequest) (ai.Reply, error)
}

// Documents is the part of the document store a session edits through.
type Documents interface {
	Current() (resume.Document, bool)
	ApplyEdit(ctx context.Context, p edit.Proposal) (resume.Document, error)
}

type State int

const (
	Pending State = iota
	Accepted
	Rejected
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Proposal is one suggested edit of the latest reply and what became of it.
type Proposal struct {
	edit.Proposal
	State State `json:"state"`
	Err   error `json:"-"`
}

// Route names where a reply came from.
type Route string

const (
	RouteBackend  Route = "backend"
	RouteDirect   Route = "direct"
	RouteFallback Route = "fallback"
)

// Options configures a Session. Any of Backend, Direct and Documents may be
// nil.
type Options struct {
	Backend      Backend
	Direct       ai.Generator
	Documents    Documents
	HistoryLimit int
}

type Session struct {
	backend Backend
	direct  ai.Generator
	docs    Documents
	conv    *conversation.Service
	limit   int

	mu        sync.Mutex
	ready     *bool
	proposals []Proposal
	busy      int
}

func New(opts Options) *Session {
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = ai.DefaultHistoryLimit
	}
	return &Session{
		backend: opts.Backend,
		direct:  opts.Direct,
		docs:    opts.Documents,
		conv:    conversation.NewService(conversation.NewMemoryRepository(0), 0),
		limit:   limit,
	}
}

func (s *Session) begin() func() {
	s.mu.Lock()
	s.busy++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.busy--
		s.mu.Unlock()
	}
}

// Busy reports whether a message is being answered.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy > 0
}

// backendReady asks the backend once whether it has a model and remembers a
// positive answer. Refresh forgets it.
func (s *Session) backendReady(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	s.mu.Lock()
	if s.ready != nil {
		r := *s.ready
		s.mu.Unlock()
		return r
	}
	s.mu.Unlock()

	st, err := s.backend.AIStatus(ctx)
	if err != nil {
		logger.Warnf("assistant: ai status: %v", err)
		return false
	}
	s.mu.Lock()
	s.ready = &st.Available
	s.mu.Unlock()
	return st.Available
}

// Refresh drops the cached backend status.
func (s *Session) Refresh() {
	s.mu.Lock()
	s.ready = nil
	s.mu.Unlock()
}

// Reset forgets history, the remembered job posting and the proposals.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.proposals = nil
	s.mu.Unlock()
	return s.conv.Reset(ctx, conversation.AnonymousUser)
}

func (s *Session) document() *resume.Document {
	if s.docs == nil {
		return nil
	}
	d, ok := s.docs.Current()
	if !ok {
		return nil
	}
	return &d
}

func (s *Session) memory(ctx context.Context) (*jobdesc.Description, []conversation.Turn) {
	c, err := s.conv.Load(ctx, conversation.AnonymousUser)
	if err != nil {
		return nil, nil
	}
	return c.Job, c.Recent(s.limit)
}

func (s *Session) remember(ctx context.Context, turns ...conversation.Turn) {
	if _, err := s.conv.Append(ctx, conversation.AnonymousUser, turns...); err != nil {
		logger.Warnf("assistant: history: %v", err)
	}
}

// Job returns the posting remembered on the direct path.
func (s *Session) Job(ctx context.Context) (*jobdesc.Description, bool) {
	job, _ := s.memory(ctx)
	return job, job != nil
}

// Send answers message and replaces the current proposals with the reply's
// edits. The reply is complete before Send returns.
func (s *Session) Send(ctx context.Context, message string) (ai.Reply, Route, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return ai.Reply{}, "", ai.ErrEmptyMessage
	}
	defer s.begin()()
	doc := s.document()

	reply, route := s.route(ctx, msg, func(ctx context.Context) (ai.Reply, error) {
		return s.backend.Chat(ctx, ai.ChatRequest{Message: msg, ResumeData: doc})
	}, func(ctx context.Context) (ai.Reply, bool, error) {
		if d, ok := jobdesc.Analyze(msg); ok {
			if _, err := s.conv.SetJob(ctx, conversation.AnonymousUser, d); err != nil {
				logger.Warnf("assistant: remember job description: %v", err)
			}
			return ai.Reply{Message: JobSavedPrefix + d.Advice(), Edits: []edit.Proposal{}}, true, nil
		}
		job, history := s.memory(ctx)
		return s.generate(ctx, ai.BuildChatPrompt(ai.ChatInput{Message: msg, Document: doc, Job: job, History: history}))
	}, msg)

	s.keep(reply)
	return reply, route, nil
}

// AnalyzeSection asks about one section of the open document.
func (s *Session) AnalyzeSection(ctx context.Context, sectionID, question string) (ai.Reply, Route, error) {
	doc := s.document()
	if doc == nil {
		return ai.Reply{}, "", ErrNoDocuments
	}
	i, ok := doc.SectionByID(sectionID)
	if !ok {
		return ai.Reply{}, "", resume.ErrSectionNotFound
	}
	content := doc.Sections[i].Text()
	defer s.begin()()

	reply, route := s.route(ctx, question, func(ctx context.Context) (ai.Reply, error) {
		return s.backend.AnalyzeSection(ctx, ai.SectionRequest{SectionContent: content, UserQuestion: question, ResumeData: doc})
	}, func(ctx context.Context) (ai.Reply, bool, error) {
		job, history := s.memory(ctx)
		return s.generate(ctx, ai.BuildSectionPrompt(ai.SectionInput{
			SectionContent: content, Question: question, Document: doc, Job: job, History: history,
		}))
	}, question)

	s.keep(reply)
	return reply, route, nil
}

// ATS asks for an applicant-tracking review of the open document.
func (s *Session) ATS(ctx context.Context, jobDescription string) (ai.Reply, Route, error) {
	doc := s.document()
	if doc == nil {
		return ai.Reply{}, "", ErrNoDocuments
	}
	defer s.begin()()

	reply, route := s.route(ctx, "ATS optimization", func(ctx context.Context) (ai.Reply, error) {
		return s.backend.ATS(ctx, ai.ATSRequest{ResumeData: doc, JobDescription: jobDescription})
	}, func(ctx context.Context) (ai.Reply, bool, error) {
		job, history := s.memory(ctx)
		return s.generate(ctx, ai.BuildATSPrompt(ai.ATSInput{
			Document: doc, JobDescription: jobDescription, Job: job, History: history,
		}))
	}, "ATS optimization")

	s.keep(reply)
	return reply, route, nil
}

// route tries the backend, then the direct path, then canned advice. Turns
// answered by a model on the direct path are kept as history.
func (s *Session) route(
	ctx context.Context,
	question string,
	viaBackend func(context.Context) (ai.Reply, error),
	viaDirect func(context.Context) (ai.Reply, bool, error),
	fallbackFor string,
) (ai.Reply, Route) {
	if s.backendReady(ctx) {
		reply, err := viaBackend(ctx)
		if err == nil {
			return reply, RouteBackend
		}
		logger.Warnf("assistant: backend ai failed, trying direct: %v", err)
	}
	reply, local, err := viaDirect(ctx)
	switch {
	case err == nil:
		if !local {
			s.remember(ctx,
				conversation.Turn{Role: conversation.RoleUser, Content: question},
				conversation.Turn{Role: conversation.RoleAssistant, Content: reply.Message},
			)
		}
		return reply, RouteDirect
	case errors.Is(err, ai.ErrUnavailable):
		logger.Debugf("assistant: no direct generator, using canned advice")
	default:
		logger.Warnf("assistant: direct generation failed: %v", err)
	}
	return ai.FallbackReply(fallbackFor), RouteFallback
}

func (s *Session) generate(ctx context.Context, prompt string) (ai.Reply, bool, error) {
	if s.direct == nil {
		return ai.Reply{}, false, ai.ErrUnavailable
	}
	raw, err := s.direct.Generate(ctx, prompt)
	if err != nil {
		return ai.Reply{}, false, err
	}
	return ai.ParseResponse(raw), false, nil
}

func (s *Session) keep(reply ai.Reply) {
	ps := make([]Proposal, len(reply.Edits))
	for i, e := range reply.Edits {
		ps[i] = Proposal{Proposal: e}
	}
	s.mu.Lock()
	s.proposals = ps
	s.mu.Unlock()
}

// Proposals returns the latest reply's edits with their states.
func (s *Session) Proposals() []Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Proposal(nil), s.proposals...)
}

func (s *Session) pending(i int) (Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.proposals) {
		return Proposal{}, fmt.Errorf("%w: %d", ErrNoProposal, i)
	}
	p := s.proposals[i]
	if p.State != Pending {
		return Proposal{}, fmt.Errorf("%w: %d is %s", ErrNotPending, i, p.State)
	}
	return p, nil
}

func (s *Session) mark(i int, st State, err error) {
	s.mu.Lock()
	if i < len(s.proposals) {
		s.proposals[i].State = st
		s.proposals[i].Err = err
	}
	s.mu.Unlock()
}

// Accept applies proposal i to the open document. A failed apply marks it
// Failed and leaves the document unchanged.
func (s *Session) Accept(ctx context.Context, i int) (resume.Document, error) {
	if s.docs == nil {
		return resume.Document{}, ErrNoDocuments
	}
	p, err := s.pending(i)
	if err != nil {
		return resume.Document{}, err
	}
	d, err := s.docs.ApplyEdit(ctx, p.Proposal)
	if err != nil {
		s.mark(i, Failed, err)
		return resume.Document{}, err
	}
	s.mark(i, Accepted, nil)
	return d, nil
}

// Reject discards proposal i.
func (s *Session) Reject(i int) error {
	if _, err := s.pending(i); err != nil {
		return err
	}
	s.mark(i, Rejected, nil)
	return nil
}
