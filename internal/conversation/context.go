// Package conversation keeps per-user AI chat memory: the last job posting a
// user pasted and the recent message history.
package conversation

import (
	"strings"
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/internal/jobdesc"
)

// AnonymousUser keys the shared context of unauthenticated callers.
const AnonymousUser = "__anon__"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Context is everything remembered for one user.
type Context struct {
	UserID    string               `json:"userId"`
	Job       *jobdesc.Description `json:"job,omitempty"`
	History   []Turn               `json:"history"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// Recent returns up to n of the latest turns, oldest first.
func (c *Context) Recent(n int) []Turn {
	if c == nil || n <= 0 {
		return nil
	}
	if len(c.History) <= n {
		return c.History
	}
	return c.History[len(c.History)-n:]
}

// HistoryText renders turns as "Role: content" lines.
func HistoryText(turns []Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := t.Role
		if role != "" {
			role = strings.ToUpper(role[:1]) + role[1:]
		}
		lines = append(lines, role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}
