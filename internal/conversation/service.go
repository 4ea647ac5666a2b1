package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
)

// DefaultMaxTurns bounds stored history when the caller passes zero.
const DefaultMaxTurns = 20

// Service wraps repository operations with history trimming.
// Updates are read-modify-write; concurrent requests for one user may lose a turn.
type Service struct {
	repo     Repository
	maxTurns int
	now      func() time.Time
}

func NewService(r Repository, maxTurns int) *Service {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Service{repo: r, maxTurns: maxTurns, now: time.Now}
}

func userKey(userID string) string {
	if userID == "" {
		return AnonymousUser
	}
	return userID
}

// Load returns the user's context, or an empty one when nothing is stored.
func (s *Service) Load(ctx context.Context, userID string) (*Context, error) {
	key := userKey(userID)
	c, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", key, err)
	}
	if c == nil {
		c = &Context{UserID: key}
	}
	return c, nil
}

func (s *Service) update(ctx context.Context, userID string, fn func(c *Context)) (*Context, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	fn(c)
	if len(c.History) > s.maxTurns {
		c.History = append([]Turn(nil), c.History[len(c.History)-s.maxTurns:]...)
	}
	c.UpdatedAt = s.now().UTC()
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save conversation %s: %w", c.UserID, err)
	}
	return c, nil
}

// Append records turns in order.
func (s *Service) Append(ctx context.Context, userID string, turns ...Turn) (*Context, error) {
	return s.update(ctx, userID, func(c *Context) {
		for _, t := range turns {
			if t.At.IsZero() {
				t.At = s.now().UTC()
			}
			c.History = append(c.History, t)
		}
	})
}

// SetJob remembers a job posting and notes it in the history.
func (s *Service) SetJob(ctx context.Context, userID string, d jobdesc.Description) (*Context, error) {
	return s.update(ctx, userID, func(c *Context) {
		c.Job = &d
		c.History = append(c.History, Turn{
			Role:    RoleSystem,
			Content: "Job description updated. Key points: " + d.Advice(),
			At:      s.now().UTC(),
		})
	})
}

// HasJob reports whether the user has a remembered posting.
func (s *Service) HasJob(ctx context.Context, userID string) (bool, error) {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return false, err
	}
	return c.Job != nil, nil
}

// Reset forgets everything for the user.
func (s *Service) Reset(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userKey(userID))
}
