package resume

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

// ErrSectionNotFound is returned when no section matches the requested id or title.
var ErrSectionNotFound = errors.New("section not found")

// NewSection returns a section of the given kind holding its default text.
func NewSection(kind SectionKind, order int) Section {
	return Section{
		ID:      uuid.NewString(),
		Title:   kind,
		Content: Content{Text: DefaultContent(kind)},
		Order:   order,
	}
}

// DefaultSections returns the eight canonical sections with placeholder text
// and order 1..8.
func DefaultSections() []Section {
	out := make([]Section, 0, len(CanonicalKinds))
	for i, kind := range CanonicalKinds {
		out = append(out, NewSection(kind, i+1))
	}
	return out
}

// CopySections duplicates sections under fresh ids, keeping title, text and order.
func CopySections(src []Section) []Section {
	out := make([]Section, len(src))
	for i, s := range src {
		s.ID = uuid.NewString()
		out[i] = s
	}
	return Renumber(sortedByOrder(out))
}

// Renumber returns a copy with order set to each section's 1-based index.
func Renumber(sections []Section) []Section {
	out := append([]Section(nil), sections...)
	for i := range out {
		out[i].Order = i + 1
	}
	return out
}

func sortedByOrder(sections []Section) []Section {
	out := append([]Section(nil), sections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Movable returns the sections offered for reorder, delete and add-entry, in
// order. Personal Information is never part of it.
func Movable(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sortedByOrder(sections) {
		if !s.Title.Locked() {
			out = append(out, s)
		}
	}
	return out
}

// MoveUp swaps the section with its upper movable neighbor and renumbers.
// Moving the first movable section is a no-op.
func MoveUp(sections []Section, id string) ([]Section, error) {
	return move(sections, id, -1)
}

// MoveDown swaps the section with its lower movable neighbor and renumbers.
// Moving the last section is a no-op.
func MoveDown(sections []Section, id string) ([]Section, error) {
	return move(sections, id, 1)
}

func move(sections []Section, id string, delta int) ([]Section, error) {
	sorted := sortedByOrder(sections)
	i := -1
	for k, s := range sorted {
		if s.ID == id {
			i = k
			break
		}
	}
	if i < 0 {
		return nil, ErrSectionNotFound
	}
	if sorted[i].Title.Locked() {
		return nil, ErrLockedSection
	}
	j := i + delta
	if j < 0 || j >= len(sorted) || sorted[j].Title.Locked() {
		return append([]Section(nil), sections...), nil
	}
	sorted[i], sorted[j] = sorted[j], sorted[i]
	return Renumber(sorted), nil
}

// RemoveSection drops the section with the given id and renumbers the rest.
func RemoveSection(sections []Section, id string) ([]Section, error) {
	sorted := sortedByOrder(sections)
	out := make([]Section, 0, len(sorted))
	found := false
	for _, s := range sorted {
		if s.ID == id {
			if s.Title.Locked() {
				return nil, ErrLockedSection
			}
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return nil, ErrSectionNotFound
	}
	return Renumber(out), nil
}

// AppendSection adds a new section of the given kind at the end.
// A second Personal Information section is refused.
func AppendSection(sections []Section, kind SectionKind) ([]Section, Section, error) {
	if kind.Locked() {
		return nil, Section{}, ErrLockedSection
	}
	s := NewSection(kind, len(sections)+1)
	out := append(sortedByOrder(sections), s)
	out = Renumber(out)
	return out, out[len(out)-1], nil
}
