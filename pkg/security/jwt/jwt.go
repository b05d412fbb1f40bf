package jwt

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio-server/pkg/auth"
)

// Generator issues HS256 tokens for the admin panel. It implements
// auth.TokenGenerator.
type Generator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewGenerator(secret, issuer string, ttl time.Duration) *Generator {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Generator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Claims carries only the registered set; the single admin needs no extra flags.
type Claims struct {
	jwt.RegisteredClaims
}

func (g *Generator) Generate(ctx context.Context, user auth.User) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}
