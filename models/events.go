package models

// Outbound event names, one per message on the trial websocket. The "event"
// field discriminates the kind on both directions of the stream.
const (
	EventTrialStarts      = "trial_starts"
	EventPhaseStarts      = "phase_starts"
	EventRequestUserInput = "request_user_input"
	EventAgentSpeaks      = "agent_speaks"
	EventTrialFinished    = "trial_finished"
)

// Inbound event names
const (
	EventSetRole   = "set_role"
	EventUserInput = "user_input"
)

// TrialStarts is emitted once when the session begins
type TrialStarts struct {
	Event     string `json:"event"`
	CaseTitle string `json:"case_title"`
}

// PhaseStarts is emitted when the trial enters a phase
type PhaseStarts struct {
	Event string `json:"event"`
	Phase string `json:"phase"`
}

// RequestUserInput is emitted when a human-controlled role must speak
type RequestUserInput struct {
	Event string `json:"event"`
	Role  string `json:"role"`
}

// AgentSpeaks is emitted for every produced utterance, human or autonomous
type AgentSpeaks struct {
	Event     string `json:"event"`
	AgentName string `json:"agent_name"`
	Message   string `json:"message"`
}

// TrialFinished is emitted once after the terminal phase completes
type TrialFinished struct {
	Event string `json:"event"`
}

// InboundMessage is the envelope for client -> server messages. Role is set
// for set_role, Message for user_input.
type InboundMessage struct {
	Event   string `json:"event"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}
