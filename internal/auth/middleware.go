package auth

import (
	"strings"

	"github.com/fquiz/fquiz/config"
	"github.com/fquiz/fquiz/internal/access"
	"github.com/fquiz/fquiz/internal/repository"
	"github.com/gin-gonic/gin"
)

const (
	identityKey = "identity"

	// GuestCookieName marks a checked-in guest browser session.
	GuestCookieName = "guest_email"
	// SessionCookieName carries the JWT for browser clients; API clients use
	// the Authorization header instead.
	SessionCookieName = "session"
)

// IdentityMiddleware resolves the requester into an access.Identity and
// stores it on the gin context. It never rejects: anonymous requests pass
// through with an empty identity, and route handlers decide what that means.
func IdentityMiddleware(cfg *config.Config, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(identityKey, resolveIdentity(c, cfg, userRepo))
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, cfg *config.Config, userRepo repository.UserRepository) access.Identity {
	if token := bearerToken(c); token != "" {
		if claims, err := ParseSessionToken(cfg.Auth.JWTSecret, token); err == nil {
			return access.Identity{UserID: claims.Subject, Email: claims.Email}
		}
	}
	if email, err := c.Cookie(GuestCookieName); err == nil && email != "" {
		id := access.Identity{Email: email, IsGuest: true}
		if user, err := userRepo.FindByEmail(email); err == nil {
			id.UserID = user.ID
		}
		return id
	}
	return access.Identity{}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// IdentityFrom returns the identity stored by IdentityMiddleware.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Identity{}
}
