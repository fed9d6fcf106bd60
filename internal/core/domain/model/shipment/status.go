package shipment

import (
	"fmt"

	"nexaci/internal/core/domain/model/lifecycle"
	"nexaci/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel shipment.
//
// Happy path:
//
//	pending → preparing → picked_up → in_transit → out_for_delivery → delivered
//
// out_for_delivery and delivery_failed form a retry loop; pending and
// preparing may be canceled. delivered and canceled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a registered shipment.
	StatusPending

	// StatusPreparing means the parcel is being prepared at the agency.
	StatusPreparing

	// StatusPickedUp means the assigned agent collected the parcel.
	StatusPickedUp

	// StatusInTransit means the parcel is traveling between hubs.
	StatusInTransit

	// StatusOutForDelivery means the agent is delivering to the recipient.
	StatusOutForDelivery

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusDeliveryFailed records a failed delivery attempt; the agent may retry.
	StatusDeliveryFailed

	// StatusCanceled is the aborted terminal status.
	StatusCanceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusPending:        "pending",
		StatusPreparing:      "preparing",
		StatusPickedUp:       "picked_up",
		StatusInTransit:      "in_transit",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusDeliveryFailed: "delivery_failed",
		StatusCanceled:       "canceled",
	}
}

// transitionRules is the adjacency table of the shipment graph. Each edge
// declares its full policy once: which non-staff roles may take it and
// whether it requires an assigned agent. Edges entering picked_up or any
// later fulfillment state require an agent; cancel edges never do.
func transitionRules() map[Status]map[Status]lifecycle.EdgeRule {
	return map[Status]map[Status]lifecycle.EdgeRule{
		StatusPending: {
			StatusPreparing: {},
			StatusCanceled:  {AllowClient: true},
		},
		StatusPreparing: {
			StatusPickedUp: {AllowCourier: true, RequiresAgent: true},
			StatusCanceled: {},
		},
		StatusPickedUp: {
			StatusInTransit: {AllowCourier: true, RequiresAgent: true},
		},
		StatusInTransit: {
			StatusOutForDelivery: {AllowCourier: true, RequiresAgent: true},
		},
		StatusOutForDelivery: {
			StatusDelivered:      {AllowCourier: true, RequiresAgent: true},
			StatusDeliveryFailed: {AllowCourier: true, RequiresAgent: true},
		},
		StatusDeliveryFailed: {
			StatusOutForDelivery: {AllowCourier: true, RequiresAgent: true},
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
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid shipment status", s))
	}
	return nil
}

// ParseStatus converts a wire name ("pending", "picked_up", ...) to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid shipment status", s))
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// RuleFor returns the declared rule of the edge from s to requested, and
// whether that edge exists in the graph.
func (s Status) RuleFor(requested Status) (lifecycle.EdgeRule, bool) {
	rule, ok := transitionRules()[s][requested]
	return rule, ok
}
