package middleware

import (
	"github.com/gin-gonic/gin"

	"goride/internal/access"
	"goride/internal/domain"
	"goride/internal/service"
)

const sessionStateKey = "sessionState"

// Authenticate resolves the request's bearer token into a session state and
// stores it on the context. It never aborts: deciding what a non-Ok state
// means for the route is the access gate's job, and some routes are public.
func Authenticate(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := authService.ResolveSession(c.Request.Context(), c.GetHeader("Authorization"))
		c.Set(sessionStateKey, state)
		c.Next()
	}
}

// SessionFromContext returns the session state stored by Authenticate.
// A missing state reads as loading, which the gate refuses to allow
// through, so a misconfigured route fails closed.
func SessionFromContext(c *gin.Context) access.SessionState {
	if v, ok := c.Get(sessionStateKey); ok {
		if state, ok := v.(access.SessionState); ok {
			return state
		}
	}
	return access.Loading()
}

// CurrentUser returns the authenticated user, or nil if the session did not
// resolve to one.
func CurrentUser(c *gin.Context) *domain.User {
	state := SessionFromContext(c)
	if state.Kind != access.SessionOk {
		return nil
	}
	return state.User
}
