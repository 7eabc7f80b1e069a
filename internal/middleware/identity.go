package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
)

const (
	// ContextKeyIdentity is the Gin context key for the verified identity.
	ContextKeyIdentity = "identity"
)

// IdentityVerifier turns a bearer token into an identity.
type IdentityVerifier interface {
	Verify(token string) (*model.Identity, error)
}

// RequireIdentity verifies the bearer token from the Authorization header.
func RequireIdentity(verifier IdentityVerifier) gin.HandlerFunc {
	return requireIdentity(verifier, false)
}

// RequireWSIdentity is RequireIdentity that also accepts ?token=..., since
// browsers cannot set headers on WebSocket upgrade requests.
func RequireWSIdentity(verifier IdentityVerifier) gin.HandlerFunc {
	return requireIdentity(verifier, true)
}

func requireIdentity(verifier IdentityVerifier, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c.GetHeader("Authorization"))
		if tokenStr == "" && allowQuery {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		identity, err := verifier.Verify(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrAuthenticationFailed)
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the Gin context.
func GetIdentity(c *gin.Context) *model.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := val.(*model.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
