// Package conversation keeps the per-session exchange log: the simulation
// report that seeds every follow-up, and the ordered turns that follow it.
// Nothing here survives the process; that is deliberate.
package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/MONSTERBOY110/Twindex/internal/prompt"
)

// Role identifies the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in the exchange log. Turns are never mutated after
// creation.
type Turn struct {
	ID                uuid.UUID `json:"id"`
	Role              Role      `json:"role"`
	Text              string    `json:"text"`
	AttachmentPreview string    `json:"attachment_preview,omitempty"` // data URI, never the file itself
	CreatedAt         time.Time `json:"created_at"`
}

// Context holds the report produced by the most recent simulation and the
// append-only sequence of follow-up turns over it.
type Context struct {
	report string
	turns  []Turn
}

func New() *Context {
	return &Context{}
}

// SeedReport installs the report of a fresh simulation. A new report always
// starts a new conversation: the turn sequence is cleared.
func (c *Context) SeedReport(text string) {
	c.report = text
	c.turns = nil
}

// Report returns the current simulation report text.
func (c *Context) Report() string { return c.report }

// HasReport reports whether a simulation has completed this session.
func (c *Context) HasReport() bool { return c.report != "" }

// AppendTurn appends a turn to the log and returns it. Turns are never
// reordered or deduplicated.
func (c *Context) AppendTurn(role Role, text, attachmentPreview string) Turn {
	t := Turn{
		ID:                uuid.New(),
		Role:              role,
		Text:              text,
		AttachmentPreview: attachmentPreview,
		CreatedAt:         time.Now(),
	}
	c.turns = append(c.turns, t)
	return t
}

// Turns returns a copy of the turn sequence in append order.
func (c *Context) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// FollowupPrompt builds the prompt for the next follow-up question. Only the
// stored report and the current question are sent; prior turns are not
// replayed, which keeps prompt growth bounded at the cost of the remote model
// not seeing earlier follow-up answers.
func (c *Context) FollowupPrompt(question string, hasAttachment bool) string {
	return prompt.BuildFollowup(c.report, question, hasAttachment)
}
