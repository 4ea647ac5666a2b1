// Package jobdesc recognises pasted job postings and pulls out the parts the
// prompt builder uses to tailor advice.
package jobdesc

import (
	"fmt"
	"strings"
)

// MinLength is the shortest text considered a posting.
const MinLength = 50

// MinKeywords is how many distinct posting keywords must appear.
const MinKeywords = 3

var postingKeywords = []string{
	"job description", "position", "role", "responsibilities", "requirements",
	"qualifications", "experience", "skills", "duties", "minimum", "preferred",
	"bachelor", "degree", "years of experience", "salary", "benefits",
	"location", "remote", "hybrid", "full-time", "part-time", "contract",
	"permanent", "entry-level", "senior", "junior", "lead", "manager",
	"director", "engineer", "developer", "analyst", "specialist",
	"coordinator", "assistant",
}

var skillHeadings = []string{
	"skills", "technologies", "tools", "languages", "frameworks",
	"databases", "platforms", "software", "programming",
}

var requirementHeadings = []string{
	"requirements", "qualifications", "minimum", "preferred",
	"experience", "education", "degree", "certification",
}

// Description is the parsed form of a posting.
type Description struct {
	Title        string   `json:"title"`
	Skills       []string `json:"skills"`
	Requirements []string `json:"requirements"`
}

// Detect reports whether text looks like a job posting.
func Detect(text string) bool {
	if len(text) < MinLength {
		return false
	}
	lower := strings.ToLower(text)
	n := 0
	for _, k := range postingKeywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n >= MinKeywords
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Parse extracts a title from the first short line among the first five,
// comma-separated skills under skill headings and every line under a
// requirement heading.
func Parse(text string) Description {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	var d Description
	for i := 0; i < len(lines) && i < 5; i++ {
		lower := strings.ToLower(lines[i])
		if len(lines[i]) < 100 && !containsAny(lower, []string{"job description", "requirements", "responsibilities"}) {
			d.Title = lines[i]
			break
		}
	}

	inSkills, inRequirements := false, false
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case containsAny(lower, skillHeadings):
			inSkills, inRequirements = true, false
		case containsAny(lower, requirementHeadings):
			inSkills, inRequirements = false, true
		}
		if inSkills && strings.Contains(line, ",") {
			for _, s := range strings.Split(line, ",") {
				if s = strings.TrimSpace(s); s != "" {
					d.Skills = append(d.Skills, s)
				}
			}
		}
		if inRequirements {
			d.Requirements = append(d.Requirements, line)
		}
	}
	return d
}

// Analyze parses text when it is a posting.
func Analyze(text string) (Description, bool) {
	if !Detect(text) {
		return Description{}, false
	}
	return Parse(text), true
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Advice summarises what to tailor: up to five skills, the title and up to
// three requirements.
func (d Description) Advice() string {
	var parts []string
	if len(d.Skills) > 0 {
		parts = append(parts, "Include these skills: "+strings.Join(firstN(d.Skills, 5), ", "))
	}
	if d.Title != "" {
		parts = append(parts, "Tailor experience for: "+d.Title)
	}
	if len(d.Requirements) > 0 {
		parts = append(parts, "Address requirements: "+strings.Join(firstN(d.Requirements, 3), "; "))
	}
	return strings.Join(parts, ". ")
}

// PromptContext renders the JOB DESCRIPTION CONTEXT lines of a prompt.
func (d Description) PromptContext() string {
	var b strings.Builder
	if d.Title != "" {
		fmt.Fprintf(&b, "Position: %s\n", d.Title)
	}
	if len(d.Skills) > 0 {
		fmt.Fprintf(&b, "Required Skills: %s\n", strings.Join(d.Skills, ", "))
	}
	if len(d.Requirements) > 0 {
		fmt.Fprintf(&b, "Requirements: %s\n", strings.Join(firstN(d.Requirements, 3), "; "))
	}
	return b.String()
}

// Empty reports whether nothing was extracted.
func (d Description) Empty() bool {
	return d.Title == "" && len(d.Skills) == 0 && len(d.Requirements) == 0
}
