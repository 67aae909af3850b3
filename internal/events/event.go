// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"intake_gateway/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Wizard Domain Events
// =============================================================================

// SessionStarted is published when a wizard session is mounted.
type SessionStarted struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Step      int    `json:"step"`
}

func (e SessionStarted) EventName() string { return "wizard.session.started" }

// StepAdvanced is published after a successful forward transition.
type StepAdvanced struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	FromStep  int    `json:"fromStep"`
	ToStep    int    `json:"toStep"`
}

func (e StepAdvanced) EventName() string { return "wizard.step.advanced" }

// DuplicateDetected is published when the duplicate gate short-circuits
// advancement into a redirect. Informational, not a failure.
type DuplicateDetected struct {
	BaseEvent
	SessionID string `json:"sessionId"`
	Phone     string `json:"phone"`
	DetailURL string `json:"detailUrl"`
}

func (e DuplicateDetected) EventName() string { return "wizard.duplicate.detected" }

// WizardCompleted is published when the upstream redirects the session to a
// terminal URL (registration finished).
type WizardCompleted struct {
	BaseEvent
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}

func (e WizardCompleted) EventName() string { return "wizard.completed" }
