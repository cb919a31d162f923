package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHappyPath(t *testing.T) {
	s := StateOpen

	// First user message never triggers the gate.
	s, err := Next(s, EventUserMessage)
	assert.NoError(t, err)
	assert.Equal(t, StateOpen, s)
	assert.False(t, ShouldGate(s))

	// First assistant reply arms the gate.
	s, err = Next(s, EventAssistantReplied)
	assert.NoError(t, err)
	assert.Equal(t, StateGatePending, s)

	// Second user message trips it.
	s, err = Next(s, EventUserMessage)
	assert.NoError(t, err)
	assert.Equal(t, StateGated, s)
	assert.True(t, ShouldGate(s))

	// Lead form submission resumes the conversation.
	s, err = Next(s, EventLeadCaptured)
	assert.NoError(t, err)
	assert.Equal(t, StateCaptured, s)
	assert.False(t, ShouldGate(s))
}

func TestGatedStaysGatedOnUserMessage(t *testing.T) {
	s, err := Next(StateGated, EventUserMessage)
	assert.NoError(t, err)
	assert.Equal(t, StateGated, s)
}

func TestCapturedIsTerminalForGate(t *testing.T) {
	s, err := Next(StateCaptured, EventUserMessage)
	assert.NoError(t, err)
	assert.Equal(t, StateCaptured, s)

	s, err = Next(StateCaptured, EventAssistantReplied)
	assert.NoError(t, err)
	assert.Equal(t, StateCaptured, s)
}

func TestInvalidTransitions(t *testing.T) {
	tests := []struct {
		from  State
		event Event
	}{
		{StateOpen, EventLeadCaptured},
		{StateGatePending, EventLeadCaptured},
		{StateGatePending, EventAssistantReplied},
		{StateCaptured, EventLeadCaptured},
		{StateGated, EventAssistantReplied},
	}

	for _, tt := range tests {
		s, err := Next(tt.from, tt.event)
		assert.Error(t, err, "from=%s event=%s", tt.from, tt.event)
		assert.Equal(t, tt.from, s)

		var invalid *ErrInvalidTransition
		assert.ErrorAs(t, err, &invalid)
	}
}

func TestValid(t *testing.T) {
	for _, s := range []State{StateOpen, StateGatePending, StateGated, StateCaptured} {
		assert.True(t, Valid(s))
	}
	assert.False(t, Valid(State("bogus")))
	assert.False(t, Valid(State("")))
}
