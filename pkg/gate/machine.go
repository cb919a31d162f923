package gate

import "fmt"

// State is the lead-gate position of a conversation.
//
//	open -> gate_pending -> gated -> captured
//
// A fresh conversation chats freely. After the first assistant reply the
// next user message triggers the gate; the gated conversation only accepts
// the lead form. Once a lead is captured the gate never re-arms.
type State string

const (
	StateOpen        State = "open"
	StateGatePending State = "gate_pending"
	StateGated       State = "gated"
	StateCaptured    State = "captured"
)

// Event is something that happened to the conversation.
type Event string

const (
	EventAssistantReplied Event = "assistant_replied"
	EventUserMessage      Event = "user_message"
	EventLeadCaptured     Event = "lead_captured"
)

// ErrInvalidTransition reports an event that is not legal in the current
// state, e.g. a lead submission while the conversation is not gated.
type ErrInvalidTransition struct {
	From  State
	Event Event
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("gate: event %q not allowed in state %q", e.Event, e.From)
}

// Next returns the state after applying an event. Transitions are handled
// exhaustively; anything not listed is an invalid transition.
func Next(from State, event Event) (State, error) {
	switch from {
	case StateOpen:
		switch event {
		case EventUserMessage:
			return StateOpen, nil
		case EventAssistantReplied:
			return StateGatePending, nil
		}
	case StateGatePending:
		switch event {
		case EventUserMessage:
			return StateGated, nil
		}
	case StateGated:
		switch event {
		case EventUserMessage:
			// Input stays disabled; the gate is re-shown, no state change.
			return StateGated, nil
		case EventLeadCaptured:
			return StateCaptured, nil
		}
	case StateCaptured:
		switch event {
		case EventUserMessage, EventAssistantReplied:
			// Terminal for the gate: chat continues freely.
			return StateCaptured, nil
		}
	}
	return from, &ErrInvalidTransition{From: from, Event: event}
}

// ShouldGate reports whether an incoming user message must be intercepted
// by the lead-capture gate instead of being answered.
func ShouldGate(s State) bool {
	return s == StateGatePending || s == StateGated
}

// Valid reports whether s is a known gate state.
func Valid(s State) bool {
	switch s {
	case StateOpen, StateGatePending, StateGated, StateCaptured:
		return true
	}
	return false
}
