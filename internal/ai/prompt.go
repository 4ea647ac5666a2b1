package ai

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/conversation"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

//go:embed prompts/*.txt
var promptText embed.FS

//go:embed prompts/*.tmpl
var promptTemplates embed.FS

var (
	systemPrompt       = mustRead("prompts/system.txt")
	instructionsPrompt = mustRead("prompts/instructions.txt")
	templates          = template.Must(template.ParseFS(promptTemplates, "prompts/*.tmpl"))
)

func mustRead(name string) string {
	b, err := promptText.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return strings.TrimRight(string(b), "\n")
}

// TemplateKey selects one of the question framings in prompts/.
type TemplateKey string

const (
	TemplateReviewExperience TemplateKey = "review_experience"
	TemplateReviewSection    TemplateKey = "review_section"
	TemplateOptimizeATS      TemplateKey = "optimize_ats"
	TemplateSuggestVerbs     TemplateKey = "suggest_verbs"
	TemplateImproveBullet    TemplateKey = "improve_bullet"
	TemplateSkillsAnalysis   TemplateKey = "skills_analysis"
)

// RenderTemplate fills a question template with content.
func RenderTemplate(key TemplateKey, content string) (string, error) {
	t := templates.Lookup(string(key) + ".tmpl")
	if t == nil {
		return "", fmt.Errorf("unknown prompt template %q", key)
	}
	var b strings.Builder
	if err := t.Execute(&b, content); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func mustRender(key TemplateKey, content string) string {
	s, err := RenderTemplate(key, content)
	if err != nil {
		panic(err)
	}
	return s
}

// sectionKeywords mark a question as being about one section.
var sectionKeywords = []string{"leadership", "experience", "skills", "education", "projects", "awards", "certifications"}

// IsSectionQuestion reports whether the message mentions a section keyword.
func IsSectionQuestion(message string) bool {
	lower := strings.ToLower(message)
	for _, k := range sectionKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

type example struct{ q, a string }

var fewShotExamples = []example{
	{"My experience says 'worked on project'", "Use specific action verbs and quantify results: 'Developed project solutions improving efficiency by 25%'"},
	{"How can I make my bullet points stronger?", "Focus on impact: 'Led team of 5 developers, delivered 3 features ahead of schedule'"},
	{"What action verbs should I use?", "Use strong verbs: Developed, Implemented, Led, Managed, Created, Designed. Avoid 'helped' or 'assisted'."},
	{"How do I optimize for ATS?", "Include job keywords, use standard headers, quantify achievements, clean formatting."},
	{"How can I improve my skills section?", "Group by category (Languages, Skills, Tools), comma-separated format, match job keywords."},
}

const (
	focusReminder = "FOCUS REMINDER: The user is asking about a specific section. Only provide feedback for that section."
	jobGuidance   = "JOB-SPECIFIC GUIDANCE:\n- Tailor advice to match the job requirements\n- Include relevant keywords from the job description\n- Focus on skills and experience that align with the position"
)

// ResumeContext renders the authored sections of doc in order. Sections
// that are empty or still at their placeholder text are left out.
func ResumeContext(doc *resume.Document) string {
	if doc == nil {
		return "No resume is currently open."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "RESUME: %s\n\n", doc.Title)
	sections := append([]resume.Section(nil), doc.Sections...)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
	for _, s := range sections {
		if !resume.IsAuthored(s) {
			continue
		}
		fmt.Fprintf(&b, "%s:\n%s\n\n", strings.ToUpper(string(s.Title)), s.Text())
	}
	return b.String()
}

// ChatInput is everything a chat prompt is built from.
type ChatInput struct {
	Message  string
	Document *resume.Document
	Job      *jobdesc.Description
	History  []conversation.Turn
	// Template overrides the framing picked from the message.
	Template TemplateKey
}

type promptBuilder struct {
	b strings.Builder
}

func (p *promptBuilder) block(s string) {
	if s == "" {
		return
	}
	p.b.WriteString(s)
	p.b.WriteString("\n\n")
}

func (p *promptBuilder) context(doc *resume.Document, job *jobdesc.Description, history []conversation.Turn) {
	p.block(systemPrompt)
	if doc != nil {
		p.block("CURRENT RESUME CONTENT:\n" + ResumeContext(doc))
	}
	if len(history) > 0 {
		p.block("CONVERSATION HISTORY (oldest first):\n" + conversation.HistoryText(history))
	}
	if job != nil && !job.Empty() {
		p.block("JOB DESCRIPTION CONTEXT:\n" + strings.TrimRight(job.PromptContext(), "\n"))
	}
}

func (p *promptBuilder) finish(job *jobdesc.Description) string {
	if job != nil && !job.Empty() {
		p.block(jobGuidance)
	}
	p.b.WriteString("EXAMPLES OF GOOD RESPONSES:\n")
	for _, ex := range fewShotExamples {
		fmt.Fprintf(&p.b, "Q: %s\nA: %s\n\n", ex.q, ex.a)
	}
	p.b.WriteString("\n")
	p.b.WriteString(instructionsPrompt)
	return p.b.String()
}

// BuildChatPrompt assembles the full prompt for a free-form question.
func BuildChatPrompt(in ChatInput) string {
	var p promptBuilder
	p.context(in.Document, in.Job, in.History)

	sectionSpecific := IsSectionQuestion(in.Message)
	switch {
	case in.Template != "":
		s, err := RenderTemplate(in.Template, in.Message)
		if err != nil {
			s = "USER QUESTION: " + in.Message
		}
		p.block(s)
	case sectionSpecific:
		p.block(mustRender(TemplateReviewSection, in.Message))
	default:
		p.block("USER QUESTION: " + in.Message)
	}
	if sectionSpecific {
		p.block(focusReminder)
	}
	return p.finish(in.Job)
}

// SectionInput asks about one section's text.
type SectionInput struct {
	SectionContent string
	Question       string
	Document       *resume.Document
	Job            *jobdesc.Description
	History        []conversation.Turn
}

// BuildSectionPrompt frames the section text with the review template and
// the user's question.
func BuildSectionPrompt(in SectionInput) string {
	var p promptBuilder
	p.context(in.Document, in.Job, in.History)
	p.block(mustRender(TemplateReviewSection, in.SectionContent))
	if q := strings.TrimSpace(in.Question); q != "" {
		p.block("USER QUESTION: " + q)
	}
	p.block(focusReminder)
	return p.finish(in.Job)
}

// ATSInput asks for an ATS review of the whole resume.
type ATSInput struct {
	Document       *resume.Document
	JobDescription string
	Job            *jobdesc.Description
	History        []conversation.Turn
}

// BuildATSPrompt frames the resume with the ATS template and the posting
// text when one was given.
func BuildATSPrompt(in ATSInput) string {
	var p promptBuilder
	p.context(nil, in.Job, in.History)
	p.block(mustRender(TemplateOptimizeATS, strings.TrimRight(ResumeContext(in.Document), "\n")))
	jd := strings.TrimSpace(in.JobDescription)
	if jd == "" {
		jd = "No specific job description provided"
	}
	p.block("JOB DESCRIPTION:\n" + jd)
	return p.finish(in.Job)
}
