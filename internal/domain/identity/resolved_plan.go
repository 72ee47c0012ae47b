package identity

// PlanResolutionState tags the outcome of resolving a tenant's plan.
// Modeling the outcomes explicitly keeps each fallback tier independently
// testable instead of burying them in nil checks.
type PlanResolutionState string

const (
	// PlanFound means the tenant's reference resolved to an existing plan
	PlanFound PlanResolutionState = "found"
	// PlanNotAssigned means the tenant carries no plan reference
	PlanNotAssigned PlanResolutionState = "not_assigned"
	// PlanMissing means the tenant's reference does not resolve (dangling)
	PlanMissing PlanResolutionState = "missing"
)

// ResolvedPlan is the tagged result of plan resolution. Plan is non-nil
// only when State is PlanFound.
type ResolvedPlan struct {
	State PlanResolutionState
	Plan  *Plan
}

// FoundPlan wraps an existing plan in a resolved result
func FoundPlan(plan *Plan) ResolvedPlan {
	return ResolvedPlan{State: PlanFound, Plan: plan}
}

// NoPlanAssigned marks a tenant without a plan reference
func NoPlanAssigned() ResolvedPlan {
	return ResolvedPlan{State: PlanNotAssigned}
}

// MissingPlan marks a dangling plan reference
func MissingPlan() ResolvedPlan {
	return ResolvedPlan{State: PlanMissing}
}

// HasPlan reports whether resolution produced an actual plan document
func (r ResolvedPlan) HasPlan() bool {
	return r.State == PlanFound && r.Plan != nil
}
