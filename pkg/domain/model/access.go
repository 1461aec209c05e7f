package model

// Authorize is the single entry point for policy-based access decisions.
// Administrators bypass policy evaluation entirely, including when the policy
// is absent or unresolvable. For everyone else a missing policy is a hard
// deny, and otherwise the policy rules decide.
func Authorize(p *Policy, sub *Subject) Decision {
	if sub.IsAdmin() {
		return Decision{Allowed: true}
	}
	if p == nil {
		return Decision{}
	}
	return p.Evaluate(sub)
}
