package resume

import "strings"

// NormalizeWhitespace collapses every whitespace run to one space and trims.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsPlaceholder reports whether the section text still equals its kind's
// default, ignoring whitespace differences.
func IsPlaceholder(s Section) bool {
	return NormalizeWhitespace(s.Text()) == NormalizeWhitespace(DefaultContent(s.Title))
}

// IsAuthored reports whether the section carries user-written text: neither
// empty nor a placeholder.
func IsAuthored(s Section) bool {
	return strings.TrimSpace(s.Text()) != "" && !IsPlaceholder(s)
}

// MergeEntry folds a new entry's text into a section. Placeholder or empty
// text is replaced outright; authored text gets the entry appended after a
// blank line.
func MergeEntry(s Section, entry string) Section {
	if strings.TrimSpace(s.Text()) == "" || IsPlaceholder(s) {
		return s.WithText(entry)
	}
	return s.WithText(s.Text() + "\n\n" + entry)
}
