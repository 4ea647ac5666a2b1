// Package devbackend is an in-memory implementation of the resume REST API
// for local development and tests. Data lives only as long as the process.
package devbackend

import (
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/resume"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidLabel   = errors.New("invalid label")
	ErrDuplicateLabel = errors.New("label with this name already exists")
)

// DefaultLabelName is the label a new document gets when none is given.
const DefaultLabelName = "Master Resume"

type userData struct {
	docs   map[string]*resume.Document
	labels map[string]*resume.Label
}

// Backend holds every user's documents, versions and labels.
type Backend struct {
	mu       sync.RWMutex
	users    map[string]*userData
	versions map[string][]resume.Version
	now      func() time.Time
}

func New() *Backend {
	return &Backend{
		users:    make(map[string]*userData),
		versions: make(map[string][]resume.Version),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (b *Backend) user(id string) *userData {
	u, ok := b.users[id]
	if !ok {
		u = &userData{docs: map[string]*resume.Document{}, labels: map[string]*resume.Label{}}
		b.users[id] = u
	}
	return u
}

func (b *Backend) stamp() resume.Timestamp { return resume.Timestamp{Time: b.now()} }

// ListDocuments returns the user's documents, most recently updated first.
func (b *Backend) ListDocuments(user string) []resume.Document {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u := b.users[user]
	if u == nil {
		return []resume.Document{}
	}
	out := make([]resume.Document, 0, len(u.docs))
	for _, d := range u.docs {
		out = append(out, d.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt.Time) })
	return out
}

func (b *Backend) GetDocument(user, id string) (resume.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if u := b.users[user]; u != nil {
		if d, ok := u.docs[id]; ok {
			return d.Clone(), nil
		}
	}
	return resume.Document{}, ErrNotFound
}

// labelFor resolves the label a new document gets. Caller holds the lock.
func (b *Backend) labelFor(u *userData, label string) (string, error) {
	if label == "" {
		for _, l := range u.labels {
			if l.Name == DefaultLabelName {
				return l.ID, nil
			}
		}
		return "", nil
	}
	if _, ok := u.labels[label]; !ok {
		return "", ErrInvalidLabel
	}
	return label, nil
}

// CreateDocument stores a new document. Without sections it gets the
// default eight.
func (b *Backend) CreateDocument(user, title, label string, sections []resume.Section) (resume.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(user)
	lbl, err := b.labelFor(u, label)
	if err != nil {
		return resume.Document{}, err
	}
	if len(sections) == 0 {
		sections = resume.DefaultSections()
	}
	now := b.stamp()
	d := &resume.Document{
		ID:        uuid.NewString(),
		Title:     title,
		Sections:  append([]resume.Section(nil), sections...),
		Label:     lbl,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.docs[d.ID] = d
	return d.Clone(), nil
}

// UpdateDocument replaces title, sections and label. Every update that
// carries sections records a new version.
func (b *Backend) UpdateDocument(user, id, title string, sections []resume.Section, label *string) (resume.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[user]
	if u == nil || u.docs[id] == nil {
		return resume.Document{}, ErrNotFound
	}
	d := u.docs[id]
	if label != nil && *label != "" {
		if _, ok := u.labels[*label]; !ok {
			return resume.Document{}, ErrInvalidLabel
		}
	}
	if title != "" {
		d.Title = title
	}
	if label != nil {
		d.Label = *label
	}
	d.UpdatedAt = b.stamp()
	if sections != nil {
		d.Sections = append([]resume.Section(nil), sections...)
		b.addVersion(d, "")
	}
	return d.Clone(), nil
}

// addVersion snapshots d. Caller holds the lock.
func (b *Backend) addVersion(d *resume.Document, description string) {
	n := len(b.versions[d.ID]) + 1
	if description == "" {
		description = "Auto-saved version " + strconv.Itoa(n)
	}
	b.versions[d.ID] = append(b.versions[d.ID], resume.Version{
		ID:            uuid.NewString(),
		DocumentID:    d.ID,
		VersionNumber: n,
		Title:         d.Title,
		Sections:      resume.CopySections(d.Sections),
		CreatedAt:     b.stamp(),
		Description:   description,
	})
}

func (b *Backend) DeleteDocument(user, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[user]
	if u == nil || u.docs[id] == nil {
		return ErrNotFound
	}
	delete(u.docs, id)
	delete(b.versions, id)
	return nil
}

// ListVersions returns newest first.
func (b *Backend) ListVersions(user, id string) ([]resume.Version, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u := b.users[user]
	if u == nil || u.docs[id] == nil {
		return nil, ErrNotFound
	}
	src := b.versions[id]
	out := make([]resume.Version, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	return out, nil
}

// RestoreVersion copies version n back into the document and records the
// restore as a new version.
func (b *Backend) RestoreVersion(user, id string, n int) (resume.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[user]
	if u == nil || u.docs[id] == nil {
		return resume.Document{}, ErrNotFound
	}
	var found *resume.Version
	for i := range b.versions[id] {
		if b.versions[id][i].VersionNumber == n {
			found = &b.versions[id][i]
			break
		}
	}
	if found == nil {
		return resume.Document{}, ErrNotFound
	}
	d := u.docs[id]
	d.Title = found.Title
	d.Sections = append([]resume.Section(nil), found.Sections...)
	d.UpdatedAt = b.stamp()
	b.addVersion(d, "Restored from version "+strconv.Itoa(n))
	return d.Clone(), nil
}

func (b *Backend) ListLabels(user string) []resume.Label {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u := b.users[user]
	if u == nil {
		return []resume.Label{}
	}
	out := make([]resume.Label, 0, len(u.labels))
	for _, l := range u.labels {
		out = append(out, *l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt.Time) })
	return out
}

func nameTaken(u *userData, name, except string) bool {
	for _, l := range u.labels {
		if l.Name == name && l.ID != except {
			return true
		}
	}
	return false
}

func (b *Backend) CreateLabel(user, name string, color resume.Color) (resume.Label, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(user)
	if nameTaken(u, name, "") {
		return resume.Label{}, ErrDuplicateLabel
	}
	l := &resume.Label{ID: uuid.NewString(), Name: name, Color: color, UserID: user, CreatedAt: b.stamp()}
	u.labels[l.ID] = l
	return *l, nil
}

func (b *Backend) UpdateLabel(user, id, name string, color resume.Color) (resume.Label, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[user]
	if u == nil || u.labels[id] == nil {
		return resume.Label{}, ErrNotFound
	}
	if name != "" && nameTaken(u, name, id) {
		return resume.Label{}, ErrDuplicateLabel
	}
	l := u.labels[id]
	if name != "" {
		l.Name = name
	}
	if color != "" {
		l.Color = color
	}
	return *l, nil
}

// DeleteLabel removes the label and clears it from the user's documents.
func (b *Backend) DeleteLabel(user, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.users[user]
	if u == nil || u.labels[id] == nil {
		return ErrNotFound
	}
	for _, d := range u.docs {
		if d.Label == id {
			d.Label = resume.NoLabel
		}
	}
	delete(u.labels, id)
	return nil
}
