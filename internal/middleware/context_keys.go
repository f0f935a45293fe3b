package middleware

import "github.com/gin-gonic/gin"

// agentIDKey is the key used to store the authenticated agent's ID in the
// request context. Using a custom type prevents collisions.
const agentIDKey = contextKey("agentID")

// GetAgentIDFromContext retrieves the authenticated agent ID from the Gin
// context, falling back to the standard request context. The ID is the JWT
// subject and is returned as the raw string claim.
func GetAgentIDFromContext(c *gin.Context) (string, bool) {
	agentIDVal, exists := c.Get(string(agentIDKey))
	if !exists {
		if ctxVal := c.Request.Context().Value(agentIDKey); ctxVal != nil {
			if agentID, ok := ctxVal.(string); ok {
				return agentID, true
			}
		}
		return "", false
	}

	agentID, ok := agentIDVal.(string)
	if !ok {
		return "", false
	}

	return agentID, true
}
