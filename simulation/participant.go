package simulation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Role tags a participant with its function in the trial.
type Role string

// The fixed set of courtroom roles
const (
	RoleJudge         Role = "judge"
	RoleProsecutor    Role = "prosecutor"
	RoleDefenseLawyer Role = "defense_lawyer"
	RoleWitness       Role = "witness"
)

// Direction marks whether a history record was heard or spoken by the participant.
type Direction string

// Turn record directions
const (
	DirectionHeard Direction = "heard"
	DirectionSpoke Direction = "spoke"
)

// HistoryWindow is how many recent turn records feed a generation prompt.
const HistoryWindow = 5

// TurnRecord is one entry in a participant's history log
type TurnRecord struct {
	Direction Direction
	Text      string
}

// Participant is a named actor in the trial. History and traits are written
// only by the controller goroutine; the human-controlled flag is also written
// by the inbound router goroutine, so it sits behind the mutex.
type Participant struct {
	Name string
	Role Role

	// Traits is an open trait-name -> value mapping used only to build
	// generation prompts, never for control flow.
	Traits map[string]string

	mu              sync.Mutex
	humanControlled bool
	history         []TurnRecord
}

// NewParticipant creates a participant with an empty history
func NewParticipant(name string, role Role) *Participant {
	return &Participant{
		Name:   name,
		Role:   role,
		Traits: map[string]string{},
	}
}

// Define sets a persona trait
func (p *Participant) Define(key, value string) {
	p.Traits[key] = value
}

// Listen appends a heard record to the participant's history
func (p *Participant) Listen(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, TurnRecord{Direction: DirectionHeard, Text: text})
}

// RecordSpoke appends a spoke record to the participant's history
func (p *Participant) RecordSpoke(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, TurnRecord{Direction: DirectionSpoke, Text: text})
}

// History returns a copy of the participant's full history log
func (p *Participant) History() []TurnRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]TurnRecord, len(p.history))
	copy(out, p.history)
	return out
}

// SetHumanControlled toggles the participant's mode. Takes effect starting
// with the participant's next turn.
func (p *Participant) SetHumanControlled(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.humanControlled = v
}

// HumanControlled reports whether the participant's turns come from the client
func (p *Participant) HumanControlled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.humanControlled
}

// BuildPrompt renders the persona description plus the recent history window
// into a generation prompt.
func (p *Participant) BuildPrompt() string {
	var persona strings.Builder
	fmt.Fprintf(&persona, "You are %s. ", p.Name)

	keys := make([]string, 0, len(p.Traits))
	for k := range p.Traits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&persona, "Your %s is %s. ", k, p.Traits[k])
	}

	recent := p.History()
	if len(recent) > HistoryWindow {
		recent = recent[len(recent)-HistoryWindow:]
	}
	lines := make([]string, 0, len(recent))
	for _, rec := range recent {
		switch rec.Direction {
		case DirectionSpoke:
			lines = append(lines, "Said: "+rec.Text)
		default:
			lines = append(lines, "Heard: "+rec.Text)
		}
	}

	return fmt.Sprintf("%s\n\nRecent conversation:\n%s\n\nWhat do you say or do next?",
		strings.TrimSpace(persona.String()), strings.Join(lines, "\n"))
}
