package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goride/internal/access"
	"goride/internal/domain"
	"goride/internal/observability"
)

// gateDenial is the JSON body for a gate denial. Redirect and From mirror
// the SPA's navigate-with-state: the client sends the session to Redirect
// and can come back to From once the blocking condition is resolved.
type gateDenial struct {
	Error              string `json:"error"`
	Redirect           string `json:"redirect"`
	From               string `json:"from"`
	Reason             string `json:"reason,omitempty"`
	BlockedOrSuspended bool   `json:"blocked_or_suspended,omitempty"`
}

// RequireRoles guards a route group with the access gate. An empty role
// list admits any authenticated account that passes the block-status and
// driver-approval checks.
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := SessionFromContext(c)
		decision := access.Decide(state, allowedRoles, c.Request.URL.Path)

		observability.AccessDecisionsTotal.WithLabelValues(decisionLabel(decision.Kind)).Inc()

		switch decision.Kind {
		case access.DecisionAllow:
			c.Next()

		case access.DecisionRedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gateDenial{
				Error:    "authentication required",
				Redirect: "/login",
				From:     decision.Target,
			})

		case access.DecisionRedirectAccountStatus:
			c.AbortWithStatusJSON(http.StatusForbidden, gateDenial{
				Error:              "account restricted",
				Redirect:           "/account-status",
				From:               decision.Target,
				Reason:             string(decision.Reason),
				BlockedOrSuspended: decision.BlockedOrSuspended,
			})

		case access.DecisionRedirectUnauthorized:
			c.AbortWithStatusJSON(http.StatusForbidden, gateDenial{
				Error:    "insufficient permissions",
				Redirect: "/unauthorized",
				From:     decision.Target,
			})

		default:
			// Loading: the session state never resolved. Something upstream
			// is misconfigured; refuse rather than guess.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gateDenial{
				Error: "session not resolved",
				From:  decision.Target,
			})
		}
	}
}

func decisionLabel(kind access.DecisionKind) string {
	switch kind {
	case access.DecisionAllow:
		return "allow"
	case access.DecisionRedirectLogin:
		return "login"
	case access.DecisionRedirectAccountStatus:
		return "account_status"
	case access.DecisionRedirectUnauthorized:
		return "unauthorized"
	default:
		return "loading"
	}
}
