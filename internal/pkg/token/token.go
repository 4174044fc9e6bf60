package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/socioclube/portal/internal/pkg/env"
)

const issuer = "socioclube"

// Claims carry the authenticated member's identity and role.
type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	return []byte(env.GetEnv("JWT_SECRET", ""))
}

// TTL returns the configured token lifetime.
func TTL() time.Duration {
	hours := env.GetEnvInt("JWT_TTL_HOURS", 24)
	return time.Duration(hours) * time.Hour
}

// Generate signs a token for the given user.
func Generate(userID uint, role string) (string, error) {
	secret := secretKey()
	if len(secret) == 0 {
		return "", errors.New("JWT_SECRET is not configured")
	}

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL())),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Validate parses and verifies a signed token.
func Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
