package domain

// Policy is one requirement a route may demand. The set of implementations
// is closed: concrete roles, "the resource is mine" (Self), and "the event
// belongs to me" (EventOwner). Adding a policy kind means adding a variant
// here and handling it in the decision engine.
type Policy interface {
	policy()
}

// RolePolicy grants access to holders of the named concrete role.
type RolePolicy struct {
	Role Role
}

// SelfPolicy grants access when the `id` request parameter equals the
// authenticated subject.
type SelfPolicy struct{}

// EventOwnerPolicy grants access when the referenced event's host is the
// authenticated subject.
type EventOwnerPolicy struct{}

func (RolePolicy) policy()       {}
func (SelfPolicy) policy()       {}
func (EventOwnerPolicy) policy() {}

// PolicySet is the requirement attached to a route or handler. An empty set
// means "attach identity if present, never deny".
type PolicySet []Policy

// RequireRoles builds a PolicySet from concrete roles.
func RequireRoles(roles ...Role) PolicySet {
	set := make(PolicySet, 0, len(roles))
	for _, r := range roles {
		set = append(set, RolePolicy{Role: r})
	}
	return set
}

// Self is the relational "resource is mine" requirement.
var Self Policy = SelfPolicy{}

// EventOwner is the relational "event belongs to me" requirement.
var EventOwner Policy = EventOwnerPolicy{}

// ContainsSelf reports whether the set includes the Self requirement.
func (s PolicySet) ContainsSelf() bool {
	for _, p := range s {
		if _, ok := p.(SelfPolicy); ok {
			return true
		}
	}
	return false
}

// ContainsEventOwner reports whether the set includes the EventOwner requirement.
func (s PolicySet) ContainsEventOwner() bool {
	for _, p := range s {
		if _, ok := p.(EventOwnerPolicy); ok {
			return true
		}
	}
	return false
}

// ConcreteRoles returns the concrete roles named by the set, excluding the
// relational requirements.
func (s PolicySet) ConcreteRoles() []Role {
	roles := make([]Role, 0, len(s))
	for _, p := range s {
		if rp, ok := p.(RolePolicy); ok {
			roles = append(roles, rp.Role)
		}
	}
	return roles
}
