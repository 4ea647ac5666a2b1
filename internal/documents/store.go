// Package documents holds the document being edited plus the user's document
// list, and pushes every change through the REST backend. State is swapped
// only after the backend has accepted a change.
package documents

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/api"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/edit"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/metrics"
)

var (
	ErrNoDocument = errors.New("no document is open")
	ErrEmptyTitle = errors.New("document title is required")
)

// Edit results recorded in metrics.EditsApplied.
const (
	resultApplied  = "applied"
	resultRejected = "rejected"
	resultUnsaved  = "persist_failed"
)

// Backend is the part of the REST client the store needs.
type Backend interface {
	ListDocuments(ctx context.Context) ([]resume.Document, error)
	GetDocument(ctx context.Context, id string) (resume.Document, error)
	CreateDocument(ctx context.Context, req api.CreateDocumentRequest) (resume.Document, error)
	UpdateDocument(ctx context.Context, id string, req api.UpdateDocumentRequest) (resume.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	ListVersions(ctx context.Context, id string) ([]resume.Version, error)
	RestoreVersion(ctx context.Context, id string, version int) (resume.Document, error)
}

type Store struct {
	backend Backend
	engine  edit.Engine

	mu      sync.Mutex
	docs    []resume.Document
	current *resume.Document
	busy    int
}

// NewStore returns an empty store. engine decides how edit proposals apply.
func NewStore(b Backend, engine edit.Engine) *Store {
	return &Store{backend: b, engine: engine, docs: []resume.Document{}}
}

func (s *Store) begin() func() {
	s.mu.Lock()
	s.busy++
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.busy--
		s.mu.Unlock()
	}
}

// Busy reports whether any document request is in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy > 0
}

// Documents returns a copy of the last fetched list.
func (s *Store) Documents() []resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resume.Document(nil), s.docs...)
}

// Current returns the open document.
func (s *Store) Current() (resume.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return resume.Document{}, false
	}
	return s.current.Clone(), true
}

// Close forgets the open document.
func (s *Store) Close() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

func (s *Store) currentDoc() (resume.Document, error) {
	d, ok := s.Current()
	if !ok {
		return resume.Document{}, ErrNoDocument
	}
	return d, nil
}

// swap installs d as the saved state of its id, in the list and as the open
// document when it is the one open.
func (s *Store) swap(d resume.Document, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.docs {
		if s.docs[i].ID == d.ID {
			s.docs[i] = d
			replaced = true
		}
	}
	if !replaced {
		s.docs = append([]resume.Document{d}, s.docs...)
	}
	if open || (s.current != nil && s.current.ID == d.ID) {
		c := d.Clone()
		s.current = &c
	}
}

// FetchAll reloads the document list. On error the previous list is kept.
func (s *Store) FetchAll(ctx context.Context) ([]resume.Document, error) {
	defer s.begin()()
	list, err := s.backend.ListDocuments(ctx)
	if err != nil {
		logger.Warnf("documents: fetch list failed: %v", err)
		return nil, fmt.Errorf("fetch documents: %w", err)
	}
	for i := range list {
		list[i] = list[i].Normalize()
	}
	s.mu.Lock()
	s.docs = list
	s.mu.Unlock()
	return append([]resume.Document(nil), list...), nil
}

// Open fetches one document and makes it the open one.
func (s *Store) Open(ctx context.Context, id string) (resume.Document, error) {
	defer s.begin()()
	d, err := s.backend.GetDocument(ctx, id)
	if err != nil {
		logger.Warnf("documents: fetch %s failed: %v", id, err)
		return resume.Document{}, fmt.Errorf("fetch document %s: %w", id, err)
	}
	d = d.Normalize()
	s.swap(d, true)
	return d, nil
}

// Template returns the most recently updated known document carrying label.
func (s *Store) Template(label string) (resume.Document, bool) {
	if label == resume.NoLabel {
		return resume.Document{}, false
	}
	var candidates []resume.Document
	for _, d := range s.Documents() {
		if d.Label == label {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return resume.Document{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].UpdatedAt.After(candidates[j].UpdatedAt.Time)
	})
	return candidates[0], true
}

// Create stores a new document and opens it. With a label that already has
// documents, the newest one's sections seed the new document; otherwise the
// backend's defaults are used.
func (s *Store) Create(ctx context.Context, title, label string) (resume.Document, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return resume.Document{}, ErrEmptyTitle
	}
	req := api.CreateDocumentRequest{Title: title, Label: label}
	if tmpl, ok := s.Template(label); ok {
		logger.Debugf("documents: seeding %q from %s", title, tmpl.ID)
		req.Sections = resume.CopySections(tmpl.Sections)
	}

	defer s.begin()()
	d, err := s.backend.CreateDocument(ctx, req)
	if err != nil {
		logger.Warnf("documents: create %q failed: %v", title, err)
		return resume.Document{}, fmt.Errorf("create document: %w", err)
	}
	d = d.Normalize()
	s.swap(d, true)
	return d, nil
}

// Update persists title, sections and label of d and swaps in the result.
func (s *Store) Update(ctx context.Context, d resume.Document) (resume.Document, error) {
	if strings.TrimSpace(d.Title) == "" {
		return resume.Document{}, ErrEmptyTitle
	}
	defer s.begin()()
	saved, err := s.backend.UpdateDocument(ctx, d.ID, api.UpdateDocumentRequest{
		Title:    d.Title,
		Sections: d.Sections,
		Label:    d.Label,
	})
	if err != nil {
		logger.Warnf("documents: update %s failed: %v", d.ID, err)
		return resume.Document{}, fmt.Errorf("update document %s: %w", d.ID, err)
	}
	saved = saved.Normalize()
	s.swap(saved, false)
	return saved, nil
}

// Save persists the open document as it is.
func (s *Store) Save(ctx context.Context) (resume.Document, error) {
	d, err := s.currentDoc()
	if err != nil {
		return resume.Document{}, err
	}
	return s.Update(ctx, d)
}

// Rename changes the open document's title.
func (s *Store) Rename(ctx context.Context, title string) (resume.Document, error) {
	d, err := s.currentDoc()
	if err != nil {
		return resume.Document{}, err
	}
	d.Title = strings.TrimSpace(title)
	return s.Update(ctx, d)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	done := s.begin()
	err := s.backend.DeleteDocument(ctx, id)
	done()
	if err != nil {
		logger.Warnf("documents: delete %s failed: %v", id, err)
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]resume.Document, 0, len(s.docs))
	for _, d := range s.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.docs = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// Versions lists a document's versions, newest first.
func (s *Store) Versions(ctx context.Context, id string) ([]resume.Version, error) {
	defer s.begin()()
	vs, err := s.backend.ListVersions(ctx, id)
	if err != nil {
		logger.Warnf("documents: versions of %s failed: %v", id, err)
		return nil, fmt.Errorf("list versions of %s: %w", id, err)
	}
	return vs, nil
}

// RestoreVersion replaces the document with version n as returned by the
// backend.
func (s *Store) RestoreVersion(ctx context.Context, id string, n int) (resume.Document, error) {
	defer s.begin()()
	d, err := s.backend.RestoreVersion(ctx, id, n)
	if err != nil {
		logger.Warnf("documents: restore %s v%d failed: %v", id, n, err)
		return resume.Document{}, fmt.Errorf("restore version %d of %s: %w", n, id, err)
	}
	d = d.Normalize()
	s.swap(d, false)
	return d, nil
}

// mutate computes new sections for the open document and persists them.
func (s *Store) mutate(ctx context.Context, fn func([]resume.Section) ([]resume.Section, error)) (resume.Document, error) {
	d, err := s.currentDoc()
	if err != nil {
		return resume.Document{}, err
	}
	secs, err := fn(d.Sections)
	if err != nil {
		return resume.Document{}, err
	}
	d.Sections = secs
	return s.Update(ctx, d)
}

func (s *Store) MoveUp(ctx context.Context, sectionID string) (resume.Document, error) {
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		return resume.MoveUp(secs, sectionID)
	})
}

func (s *Store) MoveDown(ctx context.Context, sectionID string) (resume.Document, error) {
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		return resume.MoveDown(secs, sectionID)
	})
}

func (s *Store) RemoveSection(ctx context.Context, sectionID string) (resume.Document, error) {
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		return resume.RemoveSection(secs, sectionID)
	})
}

func (s *Store) AddSection(ctx context.Context, kind resume.SectionKind) (resume.Document, error) {
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		out, _, err := resume.AppendSection(secs, kind)
		return out, err
	})
}

// SetSectionText overwrites one section's text, as the editor does on save.
func (s *Store) SetSectionText(ctx context.Context, sectionID, text string) (resume.Document, error) {
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		out := append([]resume.Section(nil), secs...)
		for i := range out {
			if out[i].ID == sectionID {
				out[i] = out[i].WithText(text)
				return out, nil
			}
		}
		return nil, resume.ErrSectionNotFound
	})
}

// AddEntry validates a form entry and merges it into its section: it
// replaces placeholder text and is appended after a blank line otherwise.
// The Personal Information section does not take entries.
func (s *Store) AddEntry(ctx context.Context, sectionID string, e resume.Entry) (resume.Document, error) {
	if err := e.Validate(); err != nil {
		return resume.Document{}, err
	}
	return s.mutate(ctx, func(secs []resume.Section) ([]resume.Section, error) {
		out := append([]resume.Section(nil), secs...)
		for i := range out {
			if out[i].ID != sectionID {
				continue
			}
			if out[i].Title.Locked() {
				return nil, resume.ErrLockedSection
			}
			out[i] = resume.MergeEntry(out[i], e.SectionText())
			return out, nil
		}
		return nil, resume.ErrSectionNotFound
	})
}

// SetDocumentLabel fetches the document and saves it with label, which may
// be resume.NoLabel.
func (s *Store) SetDocumentLabel(ctx context.Context, id, label string) (resume.Document, error) {
	done := s.begin()
	d, err := s.backend.GetDocument(ctx, id)
	done()
	if err != nil {
		logger.Warnf("documents: fetch %s for labeling failed: %v", id, err)
		return resume.Document{}, fmt.Errorf("fetch document %s: %w", id, err)
	}
	d.Label = label
	return s.Update(ctx, d)
}

// ClearLabel drops label from every known document. It only touches local
// state; the backend clears its own copies when the label is deleted.
func (s *Store) ClearLabel(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].Label == label {
			s.docs[i].Label = resume.NoLabel
		}
	}
	if s.current != nil && s.current.Label == label {
		s.current.Label = resume.NoLabel
	}
}

// ApplyEdit applies one proposal to the open document and persists it. When
// the proposal does not apply, or the backend refuses the save, the open
// document is left as it was.
func (s *Store) ApplyEdit(ctx context.Context, p edit.Proposal) (resume.Document, error) {
	d, err := s.currentDoc()
	if err != nil {
		return resume.Document{}, err
	}
	action := string(p.Action)

	next, err := s.engine.Apply(d, p)
	if err != nil {
		metrics.EditsApplied.WithLabelValues(action, resultRejected).Inc()
		logger.WithFields(logger.Fields{"section": p.Target(), "action": action}).Infof("edit not applied: %v", err)
		return resume.Document{}, err
	}

	saved, err := s.Update(ctx, next)
	if err != nil {
		metrics.EditsApplied.WithLabelValues(action, resultUnsaved).Inc()
		return resume.Document{}, err
	}
	metrics.EditsApplied.WithLabelValues(action, resultApplied).Inc()
	return saved, nil
}
