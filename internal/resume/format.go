package resume

import (
	"regexp"
	"strings"
)

// LineKind classifies one line of section text for display.
type LineKind int

const (
	LinePlain LineKind = iota
	LineBlank
	LineSkillCategory
	LineBullet
	LineHeading
	LineCompanyPositionDate
	LinePositionDate
	LineProjectDate
	LineTrailingDate
	LineDateOnly
)

var lineKindNames = map[LineKind]string{
	LinePlain:               "plain",
	LineBlank:               "blank",
	LineSkillCategory:       "skill_category",
	LineBullet:              "bullet",
	LineHeading:             "heading",
	LineCompanyPositionDate: "company_position_date",
	LinePositionDate:        "position_date",
	LineProjectDate:         "project_date",
	LineTrailingDate:        "trailing_date",
	LineDateOnly:            "date_only",
}

func (k LineKind) String() string { return lineKindNames[k] }

// Span is a run of inline text; Bold marks text that sat between ** markers.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Line is one formatted line. Lead holds the left-hand label (skill category
// or company), Body the main text and Date a right-aligned date token.
type Line struct {
	Kind LineKind `json:"kind"`
	Lead []Span   `json:"lead,omitempty"`
	Body []Span   `json:"body,omitempty"`
	Date string   `json:"date,omitempty"`
}

const dateToken = `[A-Za-z]{3}\s+\d{4}\s*[-–]\s*(?:Present|[A-Za-z]{3}\s+\d{4})|[A-Za-z]{3}\s+\d{4}`

var (
	skillCategoryRe = regexp.MustCompile(`^([A-Za-z]+):\s*(.+)$`)
	commaDateRe     = regexp.MustCompile(`(.+),\s*(.+),\s*(` + dateToken + `)$`)
	positionDateRe  = regexp.MustCompile(`^(.+?)\s{3,}(` + dateToken + `)$`)
	projectDateRe   = regexp.MustCompile(`^(.+?)\s{3,}([A-Za-z]{3}\s+\d{4})$`)
	trailingDateRe  = regexp.MustCompile(`(.*?)\s+(` + dateToken + `)$`)
	dateOnlyRe      = regexp.MustCompile(`^(` + dateToken + `)$`)
)

// FormatContent splits section text into classified display lines.
func FormatContent(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(text, "\n")
	out := make([]Line, 0, len(raw))
	for _, l := range raw {
		out = append(out, FormatLine(l))
	}
	return out
}

// FormatLine classifies a single line. Rules are tried in a fixed order and
// the first match wins.
func FormatLine(line string) Line {
	trimmed := strings.TrimSpace(line)

	if m := skillCategoryRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineSkillCategory, Lead: []Span{{Text: m[1], Bold: true}}, Body: SplitBold(strings.TrimSpace(m[2]))}
	}
	if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "-") {
		body := strings.TrimPrefix(strings.TrimPrefix(trimmed, "•"), "-")
		return Line{Kind: LineBullet, Body: SplitBold(strings.TrimSpace(body))}
	}
	if len(trimmed) > 3 && trimmed == strings.ToUpper(trimmed) {
		return Line{Kind: LineHeading, Body: []Span{{Text: line}}}
	}
	if m := commaDateRe.FindStringSubmatch(line); m != nil {
		lead := SplitBold(strings.TrimSpace(m[1]))
		for i := range lead {
			lead[i].Bold = true
		}
		return Line{Kind: LineCompanyPositionDate, Lead: lead, Body: SplitBold(strings.TrimSpace(m[2])), Date: m[3]}
	}
	if m := positionDateRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LinePositionDate, Body: SplitBold(strings.TrimSpace(m[1])), Date: m[2]}
	}
	if m := projectDateRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineProjectDate, Body: SplitBold(strings.TrimSpace(m[1])), Date: m[2]}
	}
	if m := trailingDateRe.FindStringSubmatch(line); m != nil {
		return Line{Kind: LineTrailingDate, Body: SplitBold(strings.TrimSpace(m[1])), Date: m[2]}
	}
	if m := dateOnlyRe.FindStringSubmatch(trimmed); m != nil {
		return Line{Kind: LineDateOnly, Date: m[1]}
	}
	if trimmed == "" {
		return Line{Kind: LineBlank}
	}
	return Line{Kind: LinePlain, Body: SplitBold(line)}
}

// SplitBold splits text on ** markers; odd-numbered pieces are bold.
// Empty pieces are dropped.
func SplitBold(text string) []Span {
	if text == "" {
		return nil
	}
	if !strings.Contains(text, "**") {
		return []Span{{Text: text}}
	}
	parts := strings.Split(text, "**")
	out := make([]Span, 0, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, Span{Text: p, Bold: i%2 == 1})
	}
	return out
}

// PlainText renders spans back to text with their ** markers.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString("**" + s.Text + "**")
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
