package auth

import (
	"net/http"

	"newsguard/internal/models"
	"newsguard/internal/store"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.identity"

// Identity is the typed authentication context produced by the middleware
// and consumed by handlers. Admin is nil for regular users.
type Identity struct {
	User  *models.User
	Admin *models.Admin
}

// Middleware resolves bearer tokens into identities
type Middleware struct {
	tokens *TokenManager
	users  *store.Users
}

// NewMiddleware creates the auth middleware
func NewMiddleware(tokens *TokenManager, users *store.Users) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// RequireUser rejects requests without a valid bearer token for an active
// user and stores the identity in the request context.
func (m *Middleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		userID, err := m.tokens.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}

		user, err := m.users.GetActiveByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Could not validate credentials",
			})
			return
		}

		c.Set(identityKey, &Identity{User: user})
		c.Next()
	}
}

// RequireAdmin runs after RequireUser and additionally requires an admin
// record linked to the authenticated user.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			return
		}

		admin, err := m.users.AdminFor(identity.User.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}

		identity.Admin = admin
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by RequireUser.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := value.(*Identity)
	return identity, ok
}
