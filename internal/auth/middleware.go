package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyEmail  = "auth_email"
	ContextKeyRoles  = "auth_roles"
	ContextKeyClaims = "auth_claims"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*Claims, error)
}

// Middleware authenticates API requests with bearer tokens.
type Middleware struct {
	tokens TokenValidator
}

func NewMiddleware(tokens TokenValidator) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token with 401.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Header("WWW-Authenticate", `Bearer`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		claims, err := m.tokens.Validate(token)
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		setUserContext(c, claims)
		c.Next()
	}
}

// RequireRole lets the request through when the token carries any of roles.
// It must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, r := range roles {
			if HasRole(c, r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "insufficient permissions",
		})
	}
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func setUserContext(c *gin.Context, claims *Claims) {
	c.Set(ContextKeyUserID, claims.Subject)
	c.Set(ContextKeyEmail, claims.Email)
	c.Set(ContextKeyRoles, claims.Roles)
	c.Set(ContextKeyClaims, claims)
}

// GetUserID retrieves the authenticated user's ID, empty when anonymous.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// GetEmail retrieves the authenticated user's email.
func GetEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

// GetRoles retrieves the roles granted by the token.
func GetRoles(c *gin.Context) []string {
	return c.GetStringSlice(ContextKeyRoles)
}

// HasRole reports whether the token grants role.
func HasRole(c *gin.Context, role string) bool {
	for _, r := range GetRoles(c) {
		if r == role {
			return true
		}
	}
	return false
}

// IsAuthenticated returns true if the request carried a valid token.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != ""
}
