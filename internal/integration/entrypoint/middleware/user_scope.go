// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/billtrack/recurring-engine/internal/domain/error"
	"github.com/billtrack/recurring-engine/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserIDKey is the context key for the scoped user's ID.
const UserIDKey ContextKey = "user_id"

// UserScopeHeader carries the caller's user ID. Authentication happens at the
// gateway in front of this service; the header is trusted inside the mesh.
const UserScopeHeader = "X-User-ID"

// UserScope returns a Gin middleware handler that requires a valid user scope
// header and stores the parsed ID in the request context.
func UserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserScopeHeader)
		if raw == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "User scope header is required",
				Code:  string(domainerror.ErrCodeMissingUserScope),
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid user scope header",
				Code:  string(domainerror.ErrCodeMissingUserScope),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)
		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
