package ai

import (
	"context"
	"strings"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/metrics"
)

// DefaultHistoryLimit is how many remembered turns go into a prompt.
const DefaultHistoryLimit = 6

const (
	endpointChat    = "chat"
	endpointSection = "section"
	endpointATS     = "ats"
)

// Status is the body of GET /api/ai/status.
type Status struct {
	Available             bool   `json:"available"`
	HasAPIKey             bool   `json:"has_api_key"`
	Model                 string `json:"model"`
	CurrentJobDescription bool   `json:"current_job_description"`
}

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Message    string           `json:"message"`
	ResumeData *resume.Document `json:"resume_data,omitempty"`
}

// SectionRequest is the body of POST /api/ai/section.
type SectionRequest struct {
	SectionContent string           `json:"section_content"`
	UserQuestion   string           `json:"user_question"`
	ResumeData     *resume.Document `json:"resume_data,omitempty"`
}

// ATSRequest is the body of POST /api/ai/ats.
type ATSRequest struct {
	ResumeData     *resume.Document `json:"resume_data"`
	JobDescription string           `json:"job_description,omitempty"`
}

// Service answers AI requests for the gateway. Generation failures never
// surface to callers; they degrade to canned advice.
type Service struct {
	gen          Generator
	conv         *conversation.Service
	historyLimit int
}

// NewService wires a generator and conversation memory. gen may be nil, in
// which case every reply is a fallback.
func NewService(gen Generator, conv *conversation.Service, historyLimit int) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	if c, ok := gen.(*Chain); ok && c.Len() == 0 {
		gen = nil
	}
	return &Service{gen: gen, conv: conv, historyLimit: historyLimit}
}

// Available reports whether a generator is configured.
func (s *Service) Available() bool { return s.gen != nil }

func (s *Service) Status(ctx context.Context, userID string) Status {
	st := Status{Available: s.gen != nil, HasAPIKey: s.gen != nil, Model: "None"}
	if s.gen != nil {
		st.Model = s.gen.Name()
	}
	if s.conv != nil {
		has, err := s.conv.HasJob(ctx, userID)
		if err != nil {
			logger.Warnf("ai status: %v", err)
		}
		st.CurrentJobDescription = has
	}
	return st
}

func (s *Service) memory(ctx context.Context, userID string) (*jobdesc.Description, []conversation.Turn) {
	if s.conv == nil {
		return nil, nil
	}
	c, err := s.conv.Load(ctx, userID)
	if err != nil {
		logger.Warnf("ai memory: %v", err)
		return nil, nil
	}
	return c.Job, c.Recent(s.historyLimit)
}

func (s *Service) remember(ctx context.Context, userID string, turns ...conversation.Turn) {
	if s.conv == nil {
		return
	}
	if _, err := s.conv.Append(ctx, userID, turns...); err != nil {
		logger.Warnf("ai memory: %v", err)
	}
}

// Chat answers a free-form question. A pasted job posting is remembered
// before the question is answered.
func (s *Service) Chat(ctx context.Context, userID string, req ChatRequest) (Reply, error) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return Reply{}, ErrEmptyMessage
	}
	if d, ok := jobdesc.Analyze(msg); ok && s.conv != nil {
		if _, err := s.conv.SetJob(ctx, userID, d); err != nil {
			logger.Warnf("ai chat: remember job description: %v", err)
		}
	}
	job, history := s.memory(ctx, userID)
	prompt := BuildChatPrompt(ChatInput{Message: msg, Document: req.ResumeData, Job: job, History: history})
	return s.generate(ctx, userID, endpointChat, prompt, msg, msg), nil
}

// Section reviews one section's text.
func (s *Service) Section(ctx context.Context, userID string, req SectionRequest) (Reply, error) {
	if strings.TrimSpace(req.SectionContent) == "" && strings.TrimSpace(req.UserQuestion) == "" {
		return Reply{}, ErrEmptyMessage
	}
	job, history := s.memory(ctx, userID)
	prompt := BuildSectionPrompt(SectionInput{
		SectionContent: req.SectionContent,
		Question:       req.UserQuestion,
		Document:       req.ResumeData,
		Job:            job,
		History:        history,
	})
	return s.generate(ctx, userID, endpointSection, prompt, req.UserQuestion, ""), nil
}

// ATS reviews the whole resume for applicant tracking systems.
func (s *Service) ATS(ctx context.Context, userID string, req ATSRequest) (Reply, error) {
	job, history := s.memory(ctx, userID)
	prompt := BuildATSPrompt(ATSInput{
		Document:       req.ResumeData,
		JobDescription: req.JobDescription,
		Job:            job,
		History:        history,
	})
	return s.generate(ctx, userID, endpointATS, prompt, "ATS optimization", ""), nil
}

// generate asks the model and parses its answer. History only grows when a
// model answered: the question (when given) and the reply are stored together.
func (s *Service) generate(ctx context.Context, userID, endpoint, prompt, fallbackFor, question string) Reply {
	if s.gen == nil {
		metrics.AIRequests.WithLabelValues(endpoint, "fallback").Inc()
		return FallbackReply(fallbackFor)
	}
	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		logger.WithFields(logger.Fields{"endpoint": endpoint, "user": userID}).Warnf("generation failed: %v", err)
		metrics.AIRequests.WithLabelValues(endpoint, "fallback").Inc()
		return FallbackReply(fallbackFor)
	}
	reply := ParseResponse(raw)
	metrics.AIRequests.WithLabelValues(endpoint, "generated").Inc()
	turns := []conversation.Turn{{Role: conversation.RoleAssistant, Content: reply.Message}}
	if question != "" {
		turns = append([]conversation.Turn{{Role: conversation.RoleUser, Content: question}}, turns...)
	}
	s.remember(ctx, userID, turns...)
	return reply
}
