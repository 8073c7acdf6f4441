package auth

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/library-service/pkg/util"
)

const identityKey = "auth_identity"

// Identity is the verified caller context derived from a bearer token. It is
// constructed once per request and immutable thereafter.
type Identity struct {
	SubjectID string
	Role      string
	IsAdmin   bool
	TokenID   string
	ExpiresAt time.Time
}

// Middleware validates bearer tokens and attaches the caller identity.
type Middleware struct {
	tokens  *TokenManager
	revoked *RevocationList
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, revoked *RevocationList) *Middleware {
	return &Middleware{tokens: tokens, revoked: revoked}
}

// Handle enforces authentication for protected routes. Every failure is
// returned to the error pipeline; nothing downstream runs on a bad token.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("Missing token")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Invalid token")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Invalid token")
	}
	if m.revoked.IsRevoked(c.Context(), claims.ID) {
		return apperrors.NewUnauthorized("Invalid token")
	}

	identity := &Identity{
		SubjectID: claims.Subject,
		Role:      claims.Role,
		IsAdmin:   claims.IsAdmin,
		TokenID:   claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
