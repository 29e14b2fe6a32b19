package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bizops-service/internal/domain"
	apperrors "github.com/spec-kit/bizops-service/pkg/util"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller, derived from verified token
// claims. It lives only for the duration of the request.
type Identity struct {
	ID          string
	Name        string
	Role        domain.WorkerRole
	AccountType domain.AccountType
}

// Middleware validates bearer tokens and attaches the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes. Every failure mode
// answers with the same generic 401.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	role := claims.Role
	if role == "" {
		role = domain.WorkerRoleStaff
	}

	c.Locals(identityKey, &Identity{
		ID:          claims.SubjectID,
		Name:        claims.Name,
		Role:        role,
		AccountType: claims.AccountType,
	})
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
