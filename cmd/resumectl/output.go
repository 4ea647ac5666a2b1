package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/assistant"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/labels"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v as JSON or YAML, or calls text for the text format. YAML
// goes through the JSON encoding so field names match the API.
func render(w io.Writer, format string, v interface{}, text func(io.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic interface{}
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func labelName(ls []resume.Label, id string) string {
	if id == resume.NoLabel {
		return "-"
	}
	for _, l := range ls {
		if l.ID == id {
			return l.Name
		}
	}
	return id
}

func printDocuments(w io.Writer, docs []resume.Document, ls []resume.Label) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "no documents")
		return
	}
	for _, d := range docs {
		fmt.Fprintf(w, "%s  %-30s  %-16s  %s\n", d.ID, d.Title, labelName(ls, d.Label), d.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

// printDocument renders every section through the content formatter.
func printDocument(w io.Writer, d resume.Document) {
	fmt.Fprintf(w, "%s (%s)\n", d.Title, d.ID)
	for _, s := range d.Sections {
		marker := ""
		if resume.IsPlaceholder(s) {
			marker = " [placeholder]"
		}
		fmt.Fprintf(w, "\n%d. %s%s  {%s}\n", s.Order, strings.ToUpper(string(s.Title)), marker, s.ID)
		for _, l := range resume.FormatContent(s.Text()) {
			fmt.Fprintln(w, "   "+renderLine(l))
		}
	}
}

// spanText drops bold markup; the terminal shows spans as plain text.
func spanText(spans []resume.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

func renderLine(l resume.Line) string {
	var b strings.Builder
	switch l.Kind {
	case resume.LineBlank:
		return ""
	case resume.LineBullet:
		b.WriteString("• ")
	}
	if len(l.Lead) > 0 {
		b.WriteString(spanText(l.Lead))
		if l.Kind == resume.LineSkillCategory {
			b.WriteString(": ")
		} else {
			b.WriteString(", ")
		}
	}
	b.WriteString(spanText(l.Body))
	if l.Date != "" {
		if b.Len() > 0 {
			b.WriteString("    ")
		}
		b.WriteString(l.Date)
	}
	return b.String()
}

func printVersions(w io.Writer, vs []resume.Version) {
	if len(vs) == 0 {
		fmt.Fprintln(w, "no versions")
		return
	}
	for _, v := range vs {
		fmt.Fprintf(w, "v%-4d %s  %s\n", v.VersionNumber, v.CreatedAt.Format("2006-01-02 15:04:05"), v.Description)
	}
}

func printLabels(w io.Writer, ls []resume.Label, counts map[string]int) {
	fmt.Fprintf(w, "%-36s  %-20s  %-7s  %d\n", labels.All, "All documents", "", counts[labels.All])
	for _, l := range ls {
		fmt.Fprintf(w, "%-36s  %-20s  %-7s  %d\n", l.ID, l.Name, l.Color, counts[l.ID])
	}
}

func printProposals(w io.Writer, ps []assistant.Proposal) {
	for i, p := range ps {
		fmt.Fprintf(w, "\n[%d] %s %s (%s)\n", i, p.Action, p.Target(), p.State)
		if p.Find != "" {
			fmt.Fprintf(w, "    find:     %q\n", p.Find)
		}
		if p.Replace != "" {
			fmt.Fprintf(w, "    replace:  %q\n", p.Replace)
		}
		if p.Addition != "" {
			fmt.Fprintf(w, "    addition: %q\n", p.Addition)
		}
		if p.Reason != "" {
			fmt.Fprintf(w, "    reason:   %s\n", p.Reason)
		}
		if p.Err != nil {
			fmt.Fprintf(w, "    error:    %v\n", p.Err)
		}
	}
}
