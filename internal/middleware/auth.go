// Package middleware provides authentication, logging, rate limiting,
// metrics, and tracing middleware for the application.
package middleware

import (
	"context"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityLocal is the fiber locals key for the authenticated identity.
const IdentityLocal = "identity"

// AttachIdentity parses the Bearer session token issued by the identity
// provider and, when valid, stores the caller's identity (subject + role) in
// locals and the request context. It never rejects: routes that require
// authentication stack AuthRequired on top. Runs for every route except the
// webhook route, which verifies its own signature over the raw body.
func AttachIdentity(sessionSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := parseSessionToken(c, sessionSecret)
		if ok {
			c.Locals(IdentityLocal, ident)
			ctx := context.WithValue(c.UserContext(), SubjectKey, ident.Subject)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

// AuthRequired rejects requests with no attached identity.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFrom(c); !ok {
			return models.RespondWithAppError(c,
				models.NewUnauthorizedError("Not authenticated!"))
		}
		return c.Next()
	}
}

// AdminRequired rejects callers whose role does not carry the write-any
// capability. Must be stacked after AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return models.RespondWithAppError(c,
				models.NewUnauthorizedError("Not authenticated!"))
		}
		if !ident.Role.Can(auth.CapWriteAny) {
			return models.RespondWithAppError(c,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// IdentityFrom returns the identity attached by AttachIdentity, if any.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	ident, ok := c.Locals(IdentityLocal).(auth.Identity)
	return ident, ok
}

func parseSessionToken(c *fiber.Ctx, secret string) (auth.Identity, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return auth.Identity{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return auth.Identity{}, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return auth.Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return auth.Identity{}, false
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return auth.Identity{}, false
	}

	return auth.Identity{
		Subject: sub,
		Role:    auth.Normalize(roleClaim(claims)),
	}, true
}

// roleClaim extracts the role from the session claims. The provider nests it
// under metadata; a top-level role claim is accepted as a fallback.
func roleClaim(claims jwt.MapClaims) string {
	if meta, ok := claims["metadata"].(map[string]any); ok {
		if role, ok := meta["role"].(string); ok {
			return role
		}
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}
