package resume

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingField is wrapped by *FieldError.
	ErrMissingField = errors.New("required field missing")
	// ErrEmptyEntry is returned when an entry would render to no text at all.
	ErrEmptyEntry = errors.New("entry is empty")
)

// FieldError names the required fields an entry is missing.
type FieldError struct {
	Kind   SectionKind
	Fields []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s entry: missing %s", e.Kind, strings.Join(e.Fields, ", "))
}

func (e *FieldError) Unwrap() error { return ErrMissingField }

// Entry is one structured item a user adds to a section through a form.
// Each section kind has its own variant; CustomEntry covers the rest.
type Entry interface {
	Kind() SectionKind
	SectionText() string
	Validate() error
}

// Layouts used when rendering entry dates.
const (
	ShortMonthYear = "Jan 2006"
	LongMonthYear  = "January 2006"
)

// FormatDateRange renders "Jan 2024 - Mar 2025", with "Present" for a zero end.
// A zero start yields an empty string.
func FormatDateRange(start, end time.Time) string {
	if start.IsZero() {
		return ""
	}
	to := "Present"
	if !end.IsZero() {
		to = end.Format(ShortMonthYear)
	}
	return start.Format(ShortMonthYear) + " - " + to
}

func monthYear(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LongMonthYear)
}

// joinNonEmpty joins the non-empty parts with sep.
func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func requireText(e Entry) error {
	if strings.TrimSpace(e.SectionText()) == "" {
		return ErrEmptyEntry
	}
	return nil
}

type EducationEntry struct {
	School         string
	Degree         string
	GraduationDate string
	Major          string
	GPA            string
	Coursework     string
}

func (EducationEntry) Kind() SectionKind { return Education }

func (e EducationEntry) SectionText() string {
	var lines []string
	for _, l := range []string{e.School, e.Degree, e.GraduationDate} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if e.Major != "" {
		lines = append(lines, "Major: "+e.Major)
	}
	if e.GPA != "" {
		lines = append(lines, "GPA: "+e.GPA)
	}
	if e.Coursework != "" {
		lines = append(lines, "\nRelevant Coursework: "+e.Coursework)
	}
	return strings.Join(lines, "\n")
}

func (e EducationEntry) Validate() error {
	var missing []string
	req := []struct{ name, v string }{
		{"school", e.School},
		{"degree", e.Degree},
		{"graduation date", e.GraduationDate},
		{"major", e.Major},
	}
	for _, f := range req {
		if strings.TrimSpace(f.v) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &FieldError{Kind: Education, Fields: missing}
	}
	return nil
}

type ExperienceEntry struct {
	Company      string
	Title        string
	Start        time.Time
	End          time.Time
	Achievements string
}

func (ExperienceEntry) Kind() SectionKind { return Experience }

func (e ExperienceEntry) SectionText() string {
	head := joinNonEmpty(", ", e.Company, e.Title, FormatDateRange(e.Start, e.End))
	return joinNonEmpty("\n", head, e.Achievements)
}

func (e ExperienceEntry) Validate() error { return requireText(e) }

type SkillsEntry struct {
	Category string
	Skills   string
}

func (SkillsEntry) Kind() SectionKind { return Skills }

func (e SkillsEntry) SectionText() string {
	switch {
	case e.Category != "" && e.Skills != "":
		return e.Category + ":\n" + e.Skills
	default:
		return e.Skills
	}
}

func (e SkillsEntry) Validate() error { return requireText(e) }

type ProjectEntry struct {
	Name         string
	Technologies string
	Description  string
	Features     string
}

func (ProjectEntry) Kind() SectionKind { return Projects }

func (e ProjectEntry) SectionText() string {
	tech := ""
	if e.Technologies != "" {
		tech = "Technologies: " + e.Technologies
	}
	return joinNonEmpty("\n", e.Name, tech, e.Description, e.Features)
}

func (e ProjectEntry) Validate() error { return requireText(e) }

type LeadershipEntry struct {
	Organization     string
	Position         string
	Start            time.Time
	End              time.Time
	Responsibilities string
}

func (LeadershipEntry) Kind() SectionKind { return LeadershipCommunity }

func (e LeadershipEntry) SectionText() string {
	head := joinNonEmpty(", ", e.Organization, e.Position, FormatDateRange(e.Start, e.End))
	return joinNonEmpty("\n", head, e.Responsibilities)
}

func (e LeadershipEntry) Validate() error { return requireText(e) }

type AwardEntry struct {
	Name        string
	IssuingOrg  string
	Received    time.Time
	Description string
}

func (AwardEntry) Kind() SectionKind { return AwardsHonors }

func (e AwardEntry) SectionText() string {
	head := joinNonEmpty(" | ", e.Name, e.IssuingOrg, monthYear(e.Received))
	return joinNonEmpty("\n", head, e.Description)
}

func (e AwardEntry) Validate() error { return requireText(e) }

type CertificationEntry struct {
	Name         string
	IssuingOrg   string
	Earned       time.Time
	CredentialID string
}

func (CertificationEntry) Kind() SectionKind { return Certifications }

func (e CertificationEntry) SectionText() string {
	head := joinNonEmpty(" | ", e.Name, e.IssuingOrg, monthYear(e.Earned))
	return joinNonEmpty("\n", head, e.CredentialID)
}

func (e CertificationEntry) Validate() error { return requireText(e) }

type PersonalEntry struct {
	FullName string
	Phone    string
	Email    string
	Location string
	Website  string
}

func (PersonalEntry) Kind() SectionKind { return PersonalInformation }

func (e PersonalEntry) SectionText() string {
	contact := joinNonEmpty(" | ", e.Phone, e.Email, e.Location, e.Website)
	return joinNonEmpty("\n", e.FullName, contact)
}

func (e PersonalEntry) Validate() error { return requireText(e) }

// CustomEntry carries free text for any section kind without a dedicated form.
type CustomEntry struct {
	Title SectionKind
	Text  string
}

func (e CustomEntry) Kind() SectionKind { return e.Title }

func (e CustomEntry) SectionText() string { return e.Text }

func (e CustomEntry) Validate() error { return requireText(e) }
