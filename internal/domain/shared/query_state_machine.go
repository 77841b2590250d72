package shared

import (
	"fmt"
	"time"
)

// QueryState represents the state of a single query invocation
type QueryState string

const (
	// QueryStateIdle indicates the query was accepted but has not started fetching
	QueryStateIdle QueryState = "IDLE"

	// QueryStateFetching indicates provider calls are in progress
	QueryStateFetching QueryState = "FETCHING"

	// QueryStateReady indicates the query produced a ranked result
	QueryStateReady QueryState = "READY"

	// QueryStateUnavailable indicates the query could not obtain its inputs
	QueryStateUnavailable QueryState = "UNAVAILABLE"
)

// QueryStateMachine manages the IDLE → FETCHING → READY | UNAVAILABLE lifecycle
// of one query invocation.
//
// Invariants:
// - READY and UNAVAILABLE are terminal; a new invocation gets a new machine
// - Network calls are only made while FETCHING
// - Clock is injected for testability
type QueryStateMachine struct {
	state      QueryState
	reason     string
	createdAt  time.Time
	startedAt  *time.Time
	finishedAt *time.Time
	clock      Clock
}

// NewQueryStateMachine creates a new query state machine in IDLE state
func NewQueryStateMachine(clock Clock) *QueryStateMachine {
	if clock == nil {
		clock = NewRealClock()
	}

	return &QueryStateMachine{
		state:     QueryStateIdle,
		createdAt: clock.Now(),
		clock:     clock,
	}
}

// State returns the current state
func (sm *QueryStateMachine) State() QueryState {
	return sm.state
}

// Reason returns why the query became unavailable (empty otherwise)
func (sm *QueryStateMachine) Reason() string {
	return sm.reason
}

// CreatedAt returns when the invocation was accepted
func (sm *QueryStateMachine) CreatedAt() time.Time {
	return sm.createdAt
}

// StartedAt returns when fetching began (nil if not started)
func (sm *QueryStateMachine) StartedAt() *time.Time {
	return sm.startedAt
}

// FinishedAt returns when a terminal state was reached (nil if still running)
func (sm *QueryStateMachine) FinishedAt() *time.Time {
	return sm.finishedAt
}

// BeginFetch transitions from IDLE to FETCHING
func (sm *QueryStateMachine) BeginFetch() error {
	if sm.state != QueryStateIdle {
		return fmt.Errorf("cannot begin fetch from %s state", sm.state)
	}

	now := sm.clock.Now()
	sm.state = QueryStateFetching
	sm.startedAt = &now
	return nil
}

// MarkReady transitions from FETCHING to READY
func (sm *QueryStateMachine) MarkReady() error {
	if sm.state != QueryStateFetching {
		return fmt.Errorf("cannot mark ready from %s state", sm.state)
	}

	now := sm.clock.Now()
	sm.state = QueryStateReady
	sm.finishedAt = &now
	return nil
}

// MarkUnavailable transitions to UNAVAILABLE with a human-readable reason.
// Allowed from IDLE (rejected before fetching) and FETCHING.
func (sm *QueryStateMachine) MarkUnavailable(reason string) error {
	if sm.IsTerminal() {
		return fmt.Errorf("cannot mark unavailable from %s state", sm.state)
	}

	now := sm.clock.Now()
	sm.state = QueryStateUnavailable
	sm.reason = reason
	sm.finishedAt = &now
	return nil
}

// IsTerminal returns true once READY or UNAVAILABLE has been reached
func (sm *QueryStateMachine) IsTerminal() bool {
	return sm.state == QueryStateReady || sm.state == QueryStateUnavailable
}

// Duration reports how long the fetch ran (0 if not started)
func (sm *QueryStateMachine) Duration() time.Duration {
	if sm.startedAt == nil {
		return 0
	}

	end := sm.clock.Now()
	if sm.finishedAt != nil {
		end = *sm.finishedAt
	}
	return end.Sub(*sm.startedAt)
}
