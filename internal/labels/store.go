// Package labels keeps the signed-in user's labels, the label filter on the
// document list and the default-label bootstrap.
package labels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/api"
	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
)

// All is the selection that lets every document through the filter.
const All = "all"

// Default label created the first time a user's list comes back empty.
const (
	DefaultName  = "Master Resume"
	DefaultColor = resume.Blue
)

var (
	ErrEmptyName    = errors.New("label name is required")
	ErrInvalidColor = errors.New("invalid label color")
	ErrNotFound     = errors.New("label not found")
)

// Backend is the part of the REST client the store needs.
type Backend interface {
	HasToken() bool
	ListLabels(ctx context.Context) ([]resume.Label, error)
	CreateLabel(ctx context.Context, req api.LabelRequest) (resume.Label, error)
	UpdateLabel(ctx context.Context, id string, req api.LabelRequest) (resume.Label, error)
	DeleteLabel(ctx context.Context, id string) error
}

type Store struct {
	backend Backend

	mu       sync.Mutex
	labels   []resume.Label
	selected string
	busy     int
	onDelete []func(id string)
}

func NewStore(b Backend) *Store {
	return &Store{backend: b, labels: []resume.Label{}, selected: All}
}

// OnDelete registers fn to run with the id of every deleted label, after the
// backend has accepted the delete.
func (s *Store) OnDelete(fn func(id string)) {
	s.mu.Lock()
	s.onDelete = append(s.onDelete, fn)
	s.mu.Unlock()
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

// Busy reports whether any label request is in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy > 0
}

// Fetch reloads the list. Without a token the list is emptied and no request
// is made. When the backend has no labels yet the default label is created
// and selected. On error the previous list is kept.
func (s *Store) Fetch(ctx context.Context) error {
	if !s.backend.HasToken() {
		s.mu.Lock()
		s.labels = []resume.Label{}
		s.mu.Unlock()
		return nil
	}
	defer s.begin()()

	list, err := s.backend.ListLabels(ctx)
	if err != nil {
		logger.Warnf("labels: fetch failed: %v", err)
		return fmt.Errorf("fetch labels: %w", err)
	}
	if len(list) > 0 {
		s.mu.Lock()
		s.labels = list
		s.mu.Unlock()
		return nil
	}

	l, err := s.backend.CreateLabel(ctx, api.LabelRequest{Name: DefaultName, Color: DefaultColor})
	if err != nil {
		logger.Warnf("labels: creating default label failed: %v", err)
		return fmt.Errorf("create default label: %w", err)
	}
	logger.Infof("labels: created default label %q", l.Name)
	s.mu.Lock()
	s.labels = []resume.Label{l}
	s.selected = l.ID
	s.mu.Unlock()
	return nil
}

func validate(name string, color resume.Color) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !color.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, color)
	}
	return name, nil
}

// Create validates and stores a new label. Validation happens before any
// request is sent.
func (s *Store) Create(ctx context.Context, name string, color resume.Color) (resume.Label, error) {
	name, err := validate(name, color)
	if err != nil {
		return resume.Label{}, err
	}
	defer s.begin()()

	l, err := s.backend.CreateLabel(ctx, api.LabelRequest{Name: name, Color: color})
	if err != nil {
		logger.Warnf("labels: create %q failed: %v", name, err)
		return resume.Label{}, fmt.Errorf("create label: %w", err)
	}
	s.mu.Lock()
	s.labels = append(s.labels, l)
	s.mu.Unlock()
	return l, nil
}

func (s *Store) Update(ctx context.Context, id, name string, color resume.Color) (resume.Label, error) {
	name, err := validate(name, color)
	if err != nil {
		return resume.Label{}, err
	}
	defer s.begin()()

	l, err := s.backend.UpdateLabel(ctx, id, api.LabelRequest{Name: name, Color: color})
	if err != nil {
		logger.Warnf("labels: update %s failed: %v", id, err)
		return resume.Label{}, fmt.Errorf("update label: %w", err)
	}
	s.mu.Lock()
	for i := range s.labels {
		if s.labels[i].ID == id {
			s.labels[i] = l
		}
	}
	s.mu.Unlock()
	return l, nil
}

// Delete removes the label, resets the selection when it was selected and
// runs the OnDelete hooks.
func (s *Store) Delete(ctx context.Context, id string) error {
	done := s.begin()
	err := s.backend.DeleteLabel(ctx, id)
	done()
	if err != nil {
		logger.Warnf("labels: delete %s failed: %v", id, err)
		return fmt.Errorf("delete label: %w", err)
	}

	s.mu.Lock()
	kept := s.labels[:0]
	for _, l := range s.labels {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.labels = kept
	if s.selected == id {
		s.selected = All
	}
	hooks := make([]func(string), len(s.onDelete))
	copy(hooks, s.onDelete)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(id)
	}
	return nil
}

// Labels returns a copy of the current list.
func (s *Store) Labels() []resume.Label {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resume.Label(nil), s.labels...)
}

func (s *Store) Get(id string) (resume.Label, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.labels {
		if l.ID == id {
			return l, true
		}
	}
	return resume.Label{}, false
}

// Selected returns the current filter, All or a label id.
func (s *Store) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select sets the filter. id must be All or a known label.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != All {
		found := false
		for _, l := range s.labels {
			found = found || l.ID == id
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
	}
	s.selected = id
	return nil
}

// Filter returns the documents carrying the selected label, or all of them
// when the selection is All.
func (s *Store) Filter(docs []resume.Document) []resume.Document {
	return FilterBy(docs, s.Selected())
}

// FilterBy keeps documents whose label equals selected exactly.
func FilterBy(docs []resume.Document, selected string) []resume.Document {
	out := make([]resume.Document, 0, len(docs))
	for _, d := range docs {
		if selected == All || d.Label == selected {
			out = append(out, d)
		}
	}
	return out
}

// Counts returns the number of documents per label id, plus All.
func Counts(docs []resume.Document) map[string]int {
	out := map[string]int{All: len(docs)}
	for _, d := range docs {
		if d.Label != resume.NoLabel {
			out[d.Label]++
		}
	}
	return out
}
