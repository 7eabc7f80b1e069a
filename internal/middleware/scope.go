package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusgrid/timetable-backend/internal/model"
	"github.com/campusgrid/timetable-backend/internal/response"
)

// ContextKeyScope is the Gin context key for the request scope.
const ContextKeyScope = "scope"

// DepartmentResolver maps an identity to its department id.
type DepartmentResolver interface {
	Resolve(ctx context.Context, identity model.Identity) (*uuid.UUID, error)
}

// ResolveScope builds the request scope from the verified identity. It must
// run after RequireIdentity.
func ResolveScope(resolver DepartmentResolver, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "scope_middleware").Logger()

	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		deptID, err := resolver.Resolve(c.Request.Context(), *identity)
		if err != nil {
			log.Error().Err(err).Str("user_id", identity.UserID).Msg("Failed to resolve department")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyScope, &model.Scope{Identity: *identity, DepartmentID: deptID})
		c.Next()
	}
}

// GetScope retrieves the request scope. It never returns nil; a request that
// skipped ResolveScope gets an empty scope with no department.
func GetScope(c *gin.Context) *model.Scope {
	if val, exists := c.Get(ContextKeyScope); exists {
		if scope, ok := val.(*model.Scope); ok {
			return scope
		}
	}
	return &model.Scope{}
}
