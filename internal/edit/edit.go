// Package edit applies AI edit proposals to a document by exact find and
// replace against one section's text.
package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

type Action string

const (
	ActionReplace Action = "replace"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
)

// Proposal is one suggested mutation of one section. It is produced by the
// response parser and consumed within the same conversational turn.
type Proposal struct {
	Section   string `json:"section,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
	Action    Action `json:"action"`
	Find      string `json:"find,omitempty"`
	Replace   string `json:"replace,omitempty"`
	Addition  string `json:"addition,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Target is the section the proposal names, preferring Section over SectionID.
func (p Proposal) Target() string {
	if p.Section != "" {
		return p.Section
	}
	return p.SectionID
}

var (
	ErrSectionNotFound = resume.ErrSectionNotFound
	ErrTextNotFound    = errors.New("text not found")
	ErrInvalidEdit     = errors.New("invalid edit")
)

// Error reports a failed application. Err is one of the sentinels above.
type Error struct {
	Section string
	Action  Action
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrTextNotFound):
		return fmt.Sprintf("text not found in section %s", e.Section)
	case errors.Is(e.Err, ErrSectionNotFound):
		return fmt.Sprintf("section %s not found", e.Section)
	case e.Detail != "":
		return fmt.Sprintf("invalid edit for section %s: %s", e.Section, e.Detail)
	}
	return fmt.Sprintf("%v (section %s)", e.Err, e.Section)
}

func (e *Error) Unwrap() error { return e.Err }

// aliases maps lowercase slug forms to canonical titles.
var aliases = map[string]resume.SectionKind{
	"skills-section":         resume.Skills,
	"experience-section":     resume.Experience,
	"education-section":      resume.Education,
	"projects-section":       resume.Projects,
	"leadership-section":     resume.LeadershipCommunity,
	"awards-section":         resume.AwardsHonors,
	"certifications-section": resume.Certifications,
	"personal-section":       resume.PersonalInformation,
}

// ResolveSection maps a known alias to its canonical title and returns any
// other target unchanged.
func ResolveSection(target string) string {
	if kind, ok := aliases[strings.ToLower(strings.TrimSpace(target))]; ok {
		return string(kind)
	}
	return target
}

// Engine applies proposals. The zero value keeps remove lenient: removing
// text that is absent succeeds without change. StrictRemove makes it fail
// with ErrTextNotFound like replace does.
type Engine struct {
	StrictRemove bool
}

// Apply runs the zero Engine.
func Apply(doc resume.Document, p Proposal) (resume.Document, error) {
	return Engine{}.Apply(doc, p)
}

// Apply returns a new document with the target section mutated. doc is never
// modified, and on error nothing is returned but the error.
func (e Engine) Apply(doc resume.Document, p Proposal) (resume.Document, error) {
	target := ResolveSection(p.Target())
	fail := func(err error, detail string) (resume.Document, error) {
		return resume.Document{}, &Error{Section: target, Action: p.Action, Detail: detail, Err: err}
	}
	if strings.TrimSpace(target) == "" {
		return fail(ErrInvalidEdit, "no target section")
	}

	i, ok := doc.FindSection(target)
	if !ok {
		return fail(ErrSectionNotFound, "")
	}
	section := doc.Sections[i]
	current := section.Text()

	var next string
	switch p.Action {
	case ActionReplace:
		if p.Replace == "" {
			return fail(ErrInvalidEdit, "replace requires a replacement")
		}
		if current == "" {
			next = p.Replace
			break
		}
		if p.Find == "" {
			return fail(ErrInvalidEdit, "replace requires find text")
		}
		if !strings.Contains(current, p.Find) {
			return fail(ErrTextNotFound, "")
		}
		next = strings.Replace(current, p.Find, p.Replace, 1)
	case ActionAdd:
		if p.Addition == "" {
			return fail(ErrInvalidEdit, "add requires an addition")
		}
		next = current + "\n" + p.Addition
	case ActionRemove:
		if p.Find == "" {
			return fail(ErrInvalidEdit, "remove requires find text")
		}
		if e.StrictRemove && !strings.Contains(current, p.Find) {
			return fail(ErrTextNotFound, "")
		}
		next = strings.Replace(current, p.Find, "", 1)
	default:
		return fail(ErrInvalidEdit, fmt.Sprintf("unknown action %q", p.Action))
	}

	return doc.ReplaceSection(i, section.WithText(next)), nil
}
