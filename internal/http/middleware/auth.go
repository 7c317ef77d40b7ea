package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brokerz/brokerz-auth/internal/jwt"
)

const claimsKey = "authClaims"

// Auth attaches verified token claims to the request context.
type Auth struct {
	Tokens *jwt.Generator
}

// OptionalAuth parses an Authorization bearer token when present. A missing
// or unverifiable token leaves the request anonymous; the handler decides
// whether that is an error. This middleware never aborts.
func (m *Auth) OptionalAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if claims, err := m.Tokens.Verify(strings.TrimSpace(parts[1])); err == nil {
			c.Set(claimsKey, claims)
		}
	}
	c.Next()
}

// GetClaims exposes verified claims to handlers. The second return is false
// for anonymous requests.
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*jwt.Claims)
	return claims, ok
}
