package simulation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/courtlabs/courtroom-sim-api/llm"
	"github.com/courtlabs/courtroom-sim-api/models"
)

// EventSender pushes one typed event onto the outbound stream. Send is called
// only from the controller goroutine and must preserve call order. A send
// failure cancels the session; it must never panic.
type EventSender interface {
	Send(event interface{}) error
}

// Wire values accepted by set_role
const (
	WireRoleProsecutor = "prosecutor"
	WireRoleDefense    = "defense"
	WireRoleSpectator  = "spectator"
)

// Controller drives one trial session: it advances the phase script, produces
// each scheduled turn, emits lifecycle events and routes inbound client
// messages. Run executes on a single goroutine; HandleInbound is called from
// the connection's read goroutine.
type Controller struct {
	trialCase    *models.Case
	participants map[string]*Participant
	script       Script
	provider     llm.Provider
	sender       EventSender

	mu        sync.Mutex
	awaiting  Role
	userInput chan string
}

// NewController assembles a controller for one session
func NewController(trialCase *models.Case, participants map[string]*Participant, script Script, provider llm.Provider, sender EventSender) *Controller {
	return &Controller{
		trialCase:    trialCase,
		participants: participants,
		script:       script,
		provider:     provider,
		sender:       sender,
		userInput:    make(chan string, 1),
	}
}

// emit pushes one event onto the outbound stream
func (c *Controller) emit(event interface{}) error {
	return c.sender.Send(event)
}

// Run drives the trial to completion or until ctx is cancelled. On
// cancellation the in-flight turn is abandoned: nothing is appended to
// history and no further events are emitted.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.emit(models.TrialStarts{Event: models.EventTrialStarts, CaseTitle: c.trialCase.Title}); err != nil {
		return err
	}

	for _, phase := range Phases() {
		steps, scheduled := c.script[phase]
		if !scheduled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		// a phase with zero steps still announces itself
		if err := c.emit(models.PhaseStarts{Event: models.EventPhaseStarts, Phase: phase.String()}); err != nil {
			return err
		}
		for _, step := range steps {
			if err := c.runStep(ctx, step); err != nil {
				return err
			}
		}
	}

	return c.emit(models.TrialFinished{Event: models.EventTrialFinished})
}

// runStep produces a single utterance for one scheduled step
func (c *Controller) runStep(ctx context.Context, step Step) error {
	p, ok := c.participants[step.Key]
	if !ok {
		return fmt.Errorf("script references unknown participant %q", step.Key)
	}

	p.Listen(step.Prompt)

	var text string
	if p.HumanControlled() {
		msg, err := c.awaitUserInput(ctx, p.Role)
		if err != nil {
			return err
		}
		text = msg
	} else {
		out, err := c.provider.Generate(ctx, p.BuildPrompt(), llm.DefaultMaxTokens)
		if ctxErr := ctx.Err(); ctxErr != nil {
			// cancelled mid-generation: discard whatever came back
			return ctxErr
		}
		if err != nil {
			zap.S().Errorw("generation backend failed, continuing with error turn",
				"participant", p.Name,
				"role", p.Role,
				"error", err,
			)
			text = fmt.Sprintf("[error] %s is unable to respond: %v", p.Name, err)
		} else {
			text = out
		}
	}

	p.RecordSpoke(text)
	return c.emit(models.AgentSpeaks{Event: models.EventAgentSpeaks, AgentName: p.Name, Message: text})
}

// awaitUserInput announces that a role must speak and blocks until the client
// supplies its utterance or the session is cancelled.
func (c *Controller) awaitUserInput(ctx context.Context, role Role) (string, error) {
	c.mu.Lock()
	c.awaiting = role
	// drop any utterance left over from an earlier turn
	select {
	case <-c.userInput:
	default:
	}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.awaiting = ""
		c.mu.Unlock()
	}()

	if err := c.emit(models.RequestUserInput{Event: models.EventRequestUserInput, Role: string(role)}); err != nil {
		return "", err
	}

	select {
	case msg := <-c.userInput:
		return msg, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// HandleInbound routes one client message. Called from the read goroutine,
// concurrently with Run.
func (c *Controller) HandleInbound(msg models.InboundMessage) {
	switch msg.Event {
	case models.EventSetRole:
		c.AssignRole(msg.Role)
	case models.EventUserInput:
		c.DeliverUserInput(msg.Message)
	default:
		zap.S().Debugw("discarding inbound message of unknown kind", "event", msg.Event)
	}
}

// AssignRole makes the addressed role human-controlled and clears every other
// role; the spectator sentinel clears all. At most one role is
// human-controlled at any time, and reapplying an assignment is a no-op.
func (c *Controller) AssignRole(wireRole string) {
	var target Role
	switch wireRole {
	case WireRoleProsecutor:
		target = RoleProsecutor
	case WireRoleDefense:
		target = RoleDefenseLawyer
	case WireRoleSpectator:
		target = ""
	default:
		zap.S().Debugw("discarding role assignment for unknown role", "role", wireRole)
		return
	}

	for _, p := range c.participants {
		p.SetHumanControlled(target != "" && p.Role == target)
	}
	zap.S().Infow("role assignment applied", "role", wireRole)
}

// DeliverUserInput hands an utterance to the role currently awaiting input.
// An utterance with no role waiting is a protocol violation and is discarded.
func (c *Controller) DeliverUserInput(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.awaiting == "" {
		zap.S().Debugw("discarding user input, no role is awaiting input")
		return
	}

	select {
	case c.userInput <- message:
	default:
		zap.S().Debugw("discarding user input, a message is already pending")
	}
}

// AwaitingRole reports which role, if any, is currently blocked on user input
func (c *Controller) AwaitingRole() Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}
