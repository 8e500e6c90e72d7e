package twindex

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/MONSTERBOY110/Twindex/internal/attachment"
	"github.com/MONSTERBOY110/Twindex/internal/conversation"
	"github.com/MONSTERBOY110/Twindex/internal/profile"
	"github.com/MONSTERBOY110/Twindex/internal/prompt"
)

// State is the lifecycle phase of the controller.
type State string

const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateSubmitting       State = "submitting"
	StateAwaitingResponse State = "awaiting_response"
)

// Simulator abstracts the remote call so the controller can be exercised
// against a fake in tests.
type Simulator interface {
	Simulate(ctx context.Context, prompt string, snap *attachment.Snapshot, tolerant bool) (string, error)
}

// Controller owns the request lifecycle for one session: it guards against
// overlapping submits, encodes each request from the prompt builder and the
// attachment slot, classifies the outcome, and applies successful results to
// the conversation context. Because a second request cannot begin before the
// first resolves, results land in the conversation strictly in issue order.
type Controller struct {
	client      Simulator
	attachments *attachment.Manager
	convo       *conversation.Context

	mu    sync.Mutex
	state State
}

// NewController wires a controller around a client, attachment slot and
// conversation context.
func NewController(client Simulator, attachments *attachment.Manager, convo *conversation.Context) *Controller {
	return &Controller{
		client:      client,
		attachments: attachments,
		convo:       convo,
		state:       StateIdle,
	}
}

// State returns the current lifecycle phase.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attachments exposes the attachment slot this controller reads from.
func (c *Controller) Attachments() *attachment.Manager { return c.attachments }

// Conversation exposes the conversation context this controller writes to.
func (c *Controller) Conversation() *conversation.Context { return c.convo }

// begin transitions Idle -> Validating, rejecting re-entrant submits. The
// guard is a plain state check, not a queue: a submit while one is active
// fails with ErrRequestInFlight.
func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateIdle {
		return ErrRequestInFlight
	}
	c.state = StateValidating
	return nil
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// finish returns the controller to Idle regardless of outcome; every error
// is terminal for its request only.
func (c *Controller) finish() {
	c.setState(StateIdle)
}

// RunSimulation validates the profile, sends the simulation prompt and, on
// success, installs the result as the new session report (clearing any
// previous turns and any held attachment). On any failure the conversation
// is left untouched.
func (c *Controller) RunSimulation(ctx context.Context, p *profile.PatientProfile) (string, error) {
	if err := c.begin(); err != nil {
		return "", err
	}
	defer c.finish()

	if err := p.Validate(); err != nil {
		return "", &ValidationError{Err: err}
	}

	c.setState(StateSubmitting)
	text := prompt.BuildSimulation(p)

	c.setState(StateAwaitingResponse)
	result, err := c.client.Simulate(ctx, text, nil, true)
	if err != nil {
		return "", err
	}

	c.convo.SeedReport(result)
	c.attachments.Clear()
	return result, nil
}

var errEmptyQuestion = errors.New("enter a question or attach an image")

// AskFollowup sends a follow-up question over the stored report, encoding
// the request as multipart when an attachment is held. On success the
// user and assistant turns are appended and the attachment slot is cleared;
// on failure the attachment is preserved so the user can retry without
// re-uploading.
func (c *Controller) AskFollowup(ctx context.Context, question string) (string, error) {
	if err := c.begin(); err != nil {
		return "", err
	}
	defer c.finish()

	question = strings.TrimSpace(question)
	hasAttachment := c.attachments.Has()
	if question == "" && !hasAttachment {
		return "", &ValidationError{Err: errEmptyQuestion}
	}
	if !c.convo.HasReport() {
		return "", &ValidationError{Err: errors.New("run a simulation before asking follow-up questions")}
	}

	c.setState(StateSubmitting)
	text := c.convo.FollowupPrompt(question, hasAttachment)

	var snap *attachment.Snapshot
	if hasAttachment {
		var err error
		snap, err = c.attachments.Snapshot(ctx)
		if err != nil {
			return "", &ValidationError{Err: err}
		}
	}

	c.setState(StateAwaitingResponse)
	result, err := c.client.Simulate(ctx, text, snap, false)
	if err != nil {
		return "", err
	}

	preview := ""
	if snap != nil {
		preview = snap.Preview
	}
	c.convo.AppendTurn(conversation.RoleUser, question, preview)
	c.convo.AppendTurn(conversation.RoleAssistant, result, "")
	c.attachments.Clear()
	return result, nil
}
