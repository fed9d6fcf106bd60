package lifecycle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lifecycle taxonomy. Callers classify with
// errors.Is; the HTTP adapter maps them to status codes.
var (
	ErrIllegalTransition      = errors.New("illegal transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNotAssigned            = errors.New("no agent assigned")
	ErrAgentNotEligible       = errors.New("agent not eligible")
	ErrConcurrentModification = errors.New("concurrent modification")
)

// IllegalTransitionError indicates the requested edge is not in the kind's
// transition graph, regardless of who asked.
type IllegalTransitionError struct {
	Kind string
	From string
	To   string
}

// NewIllegalTransitionError creates an IllegalTransitionError for one edge.
func NewIllegalTransitionError(kind, from, to string) *IllegalTransitionError {
	return &IllegalTransitionError{Kind: kind, From: from, To: to}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot go from %s to %s", ErrIllegalTransition, e.Kind, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UnauthorizedError indicates the actor's role or relationship to the entity
// does not permit the attempted action.
type UnauthorizedError struct {
	Role   string
	Action string
}

// NewUnauthorizedError creates an UnauthorizedError for a role and action.
func NewUnauthorizedError(role, action string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrUnauthorized, e.Role, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// NotAssignedError indicates an edge requiring an assigned agent was
// requested on an entity that has none.
type NotAssignedError struct {
	Action string
}

// NewNotAssignedError creates a NotAssignedError for the attempted action.
func NewNotAssignedError(action string) *NotAssignedError {
	return &NotAssignedError{Action: action}
}

func (e *NotAssignedError) Error() string {
	return fmt.Sprintf("%s: %s requires an assigned agent", ErrNotAssigned, e.Action)
}

func (e *NotAssignedError) Unwrap() error {
	return ErrNotAssigned
}

// AgentNotEligibleError indicates the proposed agent cannot fulfill the
// entity: wrong role, or agency mismatch for an agency-scoped entity.
type AgentNotEligibleError struct {
	Reason string
}

// NewAgentNotEligibleError creates an AgentNotEligibleError with a reason.
func NewAgentNotEligibleError(reason string) *AgentNotEligibleError {
	return &AgentNotEligibleError{Reason: reason}
}

func (e *AgentNotEligibleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAgentNotEligible, e.Reason)
}

func (e *AgentNotEligibleError) Unwrap() error {
	return ErrAgentNotEligible
}
