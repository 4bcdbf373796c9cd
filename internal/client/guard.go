package client

// Decision is the outcome of evaluating a protected view against the
// current session state.
type Decision int

const (
	// DecisionPending means the session has not been loaded yet and
	// no access decision can be made. Callers render nothing and
	// wait; redirecting here would bounce a valid returning session.
	DecisionPending Decision = iota

	// DecisionRedirectLogin means there is no complete session.
	DecisionRedirectLogin

	// DecisionAllow grants access to the protected view.
	DecisionAllow

	// DecisionRedirectUnauthorized means the session is valid but the
	// user's role is not in the view's allowed set.
	DecisionRedirectUnauthorized
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectUnauthorized:
		return "redirect-unauthorized"
	default:
		return "unknown"
	}
}

// Decide evaluates access to a protected view. It is a pure function of
// the state: the same state always yields the same decision.
func Decide(state State) Decision {
	if !state.Loaded {
		return DecisionPending
	}
	if !state.SignedIn() {
		return DecisionRedirectLogin
	}
	return DecisionAllow
}

// DecideWithRoles additionally requires the user's role to be in the
// allowed set. An empty set behaves like Decide.
func DecideWithRoles(state State, roles ...string) Decision {
	decision := Decide(state)
	if decision != DecisionAllow || len(roles) == 0 {
		return decision
	}
	for _, role := range roles {
		if state.User.Role == role {
			return DecisionAllow
		}
	}
	return DecisionRedirectUnauthorized
}
