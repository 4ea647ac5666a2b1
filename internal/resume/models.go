// Package resume holds the document model shared by the stores, the edit
// engine and the AI prompt builder, plus the placeholder defaults and the
// pure text helpers that operate on section content.
package resume

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
)

// SectionKind is a section title. The canonical kinds are listed below; any
// other value is a custom section.
type SectionKind string

const (
	PersonalInformation SectionKind = "Personal Information"
	Skills              SectionKind = "Skills"
	Education           SectionKind = "Education"
	Experience          SectionKind = "Experience"
	Projects            SectionKind = "Projects"
	LeadershipCommunity SectionKind = "Leadership & Community"
	AwardsHonors        SectionKind = "Awards & Honors"
	Certifications      SectionKind = "Certifications"
)

// CanonicalKinds lists the built-in kinds in the order a new document gets them.
var CanonicalKinds = []SectionKind{
	PersonalInformation,
	Skills,
	Education,
	Experience,
	Projects,
	LeadershipCommunity,
	AwardsHonors,
	Certifications,
}

// IsCanonical reports whether k is one of the built-in kinds (exact match).
func (k SectionKind) IsCanonical() bool {
	for _, c := range CanonicalKinds {
		if c == k {
			return true
		}
	}
	return false
}

// Locked reports whether sections of this kind are excluded from reorder,
// delete and add-entry.
func (k SectionKind) Locked() bool { return k == PersonalInformation }

// NoLabel is the label value of a document that carries no label.
const NoLabel = ""

// ErrLockedSection is returned when an operation targets the Personal Information section.
var ErrLockedSection = errors.New("personal information section cannot be moved or deleted")

// Content wraps the stored text of a section.
type Content struct {
	Text string `json:"text"`
}

type Section struct {
	ID      string      `json:"id"`
	Title   SectionKind `json:"title"`
	Content Content     `json:"content"`
	Order   int         `json:"order"`
}

// Text is a shorthand for s.Content.Text.
func (s Section) Text() string { return s.Content.Text }

// WithText returns a copy of s carrying text.
func (s Section) WithText(text string) Section {
	s.Content = Content{Text: text}
	return s
}

type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	Label     string    `json:"label"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Clone returns a copy that shares no section storage with d.
func (d Document) Clone() Document {
	out := d
	out.Sections = append([]Section(nil), d.Sections...)
	return out
}

// FindSection returns the index of the first section whose title equals
// title ignoring case.
func (d Document) FindSection(title string) (int, bool) {
	for i, s := range d.Sections {
		if strings.EqualFold(string(s.Title), title) {
			return i, true
		}
	}
	return -1, false
}

// SectionByID returns the index of the section with the given id.
func (d Document) SectionByID(id string) (int, bool) {
	for i, s := range d.Sections {
		if s.ID == id {
			return i, true
		}
	}
	return -1, false
}

// ReplaceSection returns a new document with the section at i swapped for s.
// d itself is not modified.
func (d Document) ReplaceSection(i int, s Section) Document {
	out := d.Clone()
	out.Sections[i] = s
	return out
}

// Normalize returns d with sections sorted by order, a single Personal
// Information section first (created from its default when missing) and
// order renumbered 1..n.
func (d Document) Normalize() Document {
	out := d.Clone()
	sort.SliceStable(out.Sections, func(i, j int) bool { return out.Sections[i].Order < out.Sections[j].Order })

	var personal *Section
	rest := make([]Section, 0, len(out.Sections))
	for _, s := range out.Sections {
		if s.Title == PersonalInformation {
			if personal == nil {
				p := s
				personal = &p
			}
			continue
		}
		rest = append(rest, s)
	}
	if personal == nil {
		p := NewSection(PersonalInformation, 1)
		personal = &p
	}
	out.Sections = Renumber(append([]Section{*personal}, rest...))
	return out
}

type Version struct {
	ID            string    `json:"id"`
	DocumentID    string    `json:"document_id,omitempty"`
	VersionNumber int       `json:"version_number"`
	Title         string    `json:"title,omitempty"`
	Sections      []Section `json:"sections,omitempty"`
	CreatedAt     Timestamp `json:"created_at"`
	Description   string    `json:"description,omitempty"`
}

// Color is one of the ten label colors the backend accepts.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Purple Color = "purple"
	Red    Color = "red"
	Orange Color = "orange"
	Yellow Color = "yellow"
	Pink   Color = "pink"
	Indigo Color = "indigo"
	Teal   Color = "teal"
	Cyan   Color = "cyan"
)

// Colors lists every valid label color.
var Colors = []Color{Blue, Green, Purple, Red, Orange, Yellow, Pink, Indigo, Teal, Cyan}

func (c Color) Valid() bool {
	for _, v := range Colors {
		if v == c {
			return true
		}
	}
	return false
}

type Label struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     Color     `json:"color"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
}

// Timestamp decodes both RFC 3339 and the offset-less ISO form the backend
// emits ("2006-01-02T15:04:05.999999"). Offset-less values are taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.ParseInLocation(layout, *raw, time.UTC)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}
