package mandate

import (
	"fmt"

	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/pkg/errs"
)

// Status is the lifecycle state of an administrative-document mandate.
//
// Happy path:
//
//	pending → documents_verified → power_of_attorney_signed →
//	filed_with_administration → processing → document_obtained →
//	out_for_delivery → delivered
//
// Cancellation is legal from every non-terminal state; the administration
// may reject a filed or processing mandate (failed). delivered, canceled and
// failed are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a registered mandate.
	StatusPending

	// StatusDocumentsVerified means the client's supporting documents checked out.
	StatusDocumentsVerified

	// StatusPowerOfAttorneySigned means the client signed the power of attorney.
	StatusPowerOfAttorneySigned

	// StatusFiledWithAdministration means the agent filed the request.
	StatusFiledWithAdministration

	// StatusProcessing means the administration is processing the request.
	StatusProcessing

	// StatusDocumentObtained means the agent holds the requested document.
	StatusDocumentObtained

	// StatusOutForDelivery means the agent is delivering the document.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusCanceled is the aborted terminal status.
	StatusCanceled

	// StatusFailed is the terminal status for administration rejection.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:                 "pending",
		StatusDocumentsVerified:       "documents_verified",
		StatusPowerOfAttorneySigned:   "power_of_attorney_signed",
		StatusFiledWithAdministration: "filed_with_administration",
		StatusProcessing:              "processing",
		StatusDocumentObtained:        "document_obtained",
		StatusOutForDelivery:          "out_for_delivery",
		StatusDelivered:               "delivered",
		StatusCanceled:                "canceled",
		StatusFailed:                  "failed",
	}
}

// transitionRules is the adjacency table of the mandate graph. Edges entering
// filed_with_administration or any later state require an assigned agent;
// cancel edges never do. The originating client may only cancel from pending.
func transitionRules() map[Status]map[Status]lifecycle.EdgeRule {
	return map[Status]map[Status]lifecycle.EdgeRule{
		StatusPending: {
			StatusDocumentsVerified: {},
			StatusCanceled:          {AllowClient: true},
		},
		StatusDocumentsVerified: {
			StatusPowerOfAttorneySigned: {},
			StatusCanceled:              {},
		},
		StatusPowerOfAttorneySigned: {
			StatusFiledWithAdministration: {AllowCourier: true, RequiresAgent: true},
			StatusCanceled:                {},
		},
		StatusFiledWithAdministration: {
			StatusProcessing: {AllowCourier: true, RequiresAgent: true},
			StatusFailed:     {AllowCourier: true, RequiresAgent: true},
			StatusCanceled:   {},
		},
		StatusProcessing: {
			StatusDocumentObtained: {AllowCourier: true, RequiresAgent: true},
			StatusFailed:           {AllowCourier: true, RequiresAgent: true},
			StatusCanceled:         {},
		},
		StatusDocumentObtained: {
			StatusOutForDelivery: {AllowCourier: true, RequiresAgent: true},
			StatusCanceled:       {},
		},
		StatusOutForDelivery: {
			StatusDelivered: {AllowCourier: true, RequiresAgent: true},
			StatusCanceled:  {},
		},
	}
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid mandate status", s))
	}
	return nil
}

// ParseStatus converts a wire name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid mandate status", s))
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled || s == StatusFailed
}

// RuleFor returns the declared rule of the edge from s to requested, and
// whether that edge exists in the graph.
func (s Status) RuleFor(requested Status) (lifecycle.EdgeRule, bool) {
	rule, ok := transitionRules()[s][requested]
	return rule, ok
}
