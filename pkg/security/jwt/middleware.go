package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewAuthMiddleware returns a Fiber middleware guarding the admin routes.
// It validates an HS256 token from the Authorization header and stores the
// token subject (the admin's user id) in c.Locals("userId").
func NewAuthMiddleware(secret, expectedIssuer string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c.Get("Authorization"))
		if tokenStr == "" {
			return unauthorized(c, "missing bearer token")
		}

		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid or expired token")
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return unauthorized(c, "invalid token claims")
		}
		if expectedIssuer != "" && claims.Issuer != expectedIssuer {
			return unauthorized(c, "invalid token issuer")
		}

		c.Locals("userId", claims.Subject)
		return c.Next()
	}
}

// extractToken accepts both "Bearer <token>" and a bare token, since the
// admin panel's fetch wrapper historically sent it without the prefix.
func extractToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	if scheme, rest, ok := strings.Cut(header, " "); ok {
		if strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(rest)
		}
		return ""
	}
	return header
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": message})
}
