// Package access decides whether a session may reach a role-restricted
// route. The decision is a pure function of the session-fetch outcome and
// the route's allowed roles; it performs no I/O and holds no state, so a
// fresh decision is computed on every evaluation.
package access

import "goride/internal/domain"

// SessionKind tags the outcome of the session-user fetch.
type SessionKind int

const (
	// SessionLoading means the fetch has not resolved yet.
	SessionLoading SessionKind = iota
	// SessionOk means the fetch succeeded. User may still be nil if the
	// fetch returned no payload.
	SessionOk
	// SessionAuthDenied means the fetch was rejected by the authorization
	// layer (the 401-equivalent), e.g. a revoked token.
	SessionAuthDenied
	// SessionFailed means the fetch failed for any other reason.
	SessionFailed
)

// SessionState is the resolved state of the session-user fetch, modeled as
// a tagged union so callers branch on Kind rather than sniffing error
// shapes.
type SessionState struct {
	Kind   SessionKind
	User   *domain.User // set when Kind == SessionOk
	Detail error        // set when Kind == SessionFailed
}

// Loading returns the state for an unresolved fetch.
func Loading() SessionState { return SessionState{Kind: SessionLoading} }

// Ok returns the state for a successful fetch.
func Ok(user *domain.User) SessionState {
	return SessionState{Kind: SessionOk, User: user}
}

// AuthDenied returns the state for an authorization-denied fetch.
func AuthDenied() SessionState { return SessionState{Kind: SessionAuthDenied} }

// Failed returns the state for a fetch that failed for any other reason.
func Failed(err error) SessionState {
	return SessionState{Kind: SessionFailed, Detail: err}
}

// DecisionKind enumerates the possible gate outcomes.
type DecisionKind int

const (
	DecisionLoading DecisionKind = iota
	DecisionAllow
	DecisionRedirectLogin
	DecisionRedirectAccountStatus
	DecisionRedirectUnauthorized
)

// StatusReason explains an account-status redirect.
type StatusReason string

const (
	ReasonBlockedOrSuspended StatusReason = "blocked-or-suspended"
	ReasonBlocked            StatusReason = "blocked"
	ReasonDriverIssue        StatusReason = "driver-issue"
)

// Decision is the outcome of a gate evaluation. Target carries the original
// navigation target so the session can be sent back there once the blocking
// condition is resolved. BlockedOrSuspended is set only when the denial came
// from the authorization layer rather than from inspecting the fetched
// record, so the account-status page can render the right message without
// re-fetching.
type Decision struct {
	Kind               DecisionKind
	Reason             StatusReason
	BlockedOrSuspended bool
	Target             string
}

// Decide evaluates the gate for a route. allowedRoles is the route's role
// whitelist; an empty whitelist admits any role. target is the navigation
// target being guarded, echoed back on every decision.
//
// Block-status and driver-approval checks run strictly before the role
// check: a blocked admin goes to account-status, never to unauthorized.
// Any ambiguous or error state resolves to a login redirect, never to
// Allow.
func Decide(state SessionState, allowedRoles []domain.Role, target string) Decision {
	switch state.Kind {
	case SessionLoading:
		return Decision{Kind: DecisionLoading, Target: target}

	case SessionAuthDenied:
		return Decision{
			Kind:               DecisionRedirectAccountStatus,
			Reason:             ReasonBlockedOrSuspended,
			BlockedOrSuspended: true,
			Target:             target,
		}

	case SessionFailed:
		return Decision{Kind: DecisionRedirectLogin, Target: target}
	}

	user := state.User
	if user == nil {
		// Fetch resolved but carried no payload. Fail closed.
		return Decision{Kind: DecisionRedirectLogin, Target: target}
	}

	if user.IsBlocked {
		return Decision{
			Kind:   DecisionRedirectAccountStatus,
			Reason: ReasonBlocked,
			Target: target,
		}
	}

	if user.Role == domain.RoleDriver {
		approval := user.DriverApproval
		if approval == nil || !approval.IsApproved || approval.IsSuspended {
			return Decision{
				Kind:   DecisionRedirectAccountStatus,
				Reason: ReasonDriverIssue,
				Target: target,
			}
		}
	}

	if len(allowedRoles) > 0 && !roleAllowed(user.Role, allowedRoles) {
		return Decision{Kind: DecisionRedirectUnauthorized, Target: target}
	}

	return Decision{Kind: DecisionAllow, Target: target}
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
