package lifecycle

import (
	"fmt"

	"nexaci/internal/core/domain/model/account"
	"nexaci/internal/core/domain/model/kernel"
)

// EdgeRule declares the policy of one edge in a transition graph.
//
// Managers and admins are governed globally (admins unconditionally, managers
// within the entity's owner agency), so the rule only carries what varies per
// edge: whether the originating client may take it, whether the assigned
// courier may take it, and whether it requires an assigned agent at all.
type EdgeRule struct {
	AllowClient   bool
	AllowCourier  bool
	RequiresAgent bool
}

// Subject is the slice of entity state that authorization decisions need.
// Both aggregates satisfy it.
type Subject interface {
	OriginatingParty() kernel.UUID
	AssignedAgent() *kernel.UUID
	OwnerAgency() *kernel.UUID
}

// Authorize evaluates a declared edge rule against the acting party.
// It assumes edge legality and agent presence were already checked;
// it only answers "may this actor take this edge".
func Authorize(rule EdgeRule, subject Subject, actor *account.Account, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	switch {
	case actor.Role().IsPrivileged():
		return nil

	case actor.Role() == account.RoleManager:
		if agency := subject.OwnerAgency(); agency != nil && actor.BelongsToAgency(*agency) {
			return nil
		}

	case actor.Role() == account.RoleCourier:
		if rule.AllowCourier && isAssignedAgent(subject, actor) {
			return nil
		}

	case actor.Role() == account.RoleClient:
		if rule.AllowClient && subject.OriginatingParty().IsEqual(actor.ID()) {
			return nil
		}
	}

	return NewUnauthorizedError(actor.Role().String(), action)
}

// AuthorizeAssignment answers whether the actor may bind or rebind an agent:
// admins always, managers for entities owned by their agency.
func AuthorizeAssignment(subject Subject, actor *account.Account) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	if actor.Role().IsPrivileged() {
		return nil
	}
	if actor.Role() == account.RoleManager {
		if agency := subject.OwnerAgency(); agency != nil && actor.BelongsToAgency(*agency) {
			return nil
		}
	}

	return NewUnauthorizedError(actor.Role().String(), "assign agent")
}

// CheckAgentEligibility answers whether the proposed agent can fulfill the
// entity: the fulfillment-agent role, and a matching agency when the entity
// is agency-scoped.
func CheckAgentEligibility(subject Subject, agent *account.Account) error {
	if err := agent.Validate(); err != nil {
		return err
	}

	if agent.Role() != account.RoleCourier {
		return NewAgentNotEligibleError(fmt.Sprintf("role %s is not a fulfillment agent", agent.Role()))
	}
	if agency := subject.OwnerAgency(); agency != nil && !agent.BelongsToAgency(*agency) {
		return NewAgentNotEligibleError("agent belongs to a different agency")
	}

	return nil
}

func isAssignedAgent(subject Subject, actor *account.Account) bool {
	assigned := subject.AssignedAgent()
	return assigned != nil && assigned.IsEqual(actor.ID())
}
