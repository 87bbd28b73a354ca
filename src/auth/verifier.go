package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the resolved caller, as provided by the token verifier.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier resolves a bearer token to an identity. Implementations are
// selected by deployment configuration (real verifier vs fixed dev identity).
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// JWTVerifier validates HS256-signed tokens issued by the identity provider.
// The uid is read from the "sub" claim (falling back to "uid").
type JWTVerifier struct {
	Secret []byte
}

func (v JWTVerifier) Verify(ctx context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return v.Secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, fmt.Errorf("invalid token claims")
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		uid, _ = claims["uid"].(string)
	}
	if uid == "" {
		return Identity{}, fmt.Errorf("token missing subject")
	}
	email, _ := claims["email"].(string)

	return Identity{UID: uid, Email: email}, nil
}

// StaticVerifier always resolves to a fixed identity. It exists for
// development deployments and tests; never enable it in production.
type StaticVerifier struct {
	Identity Identity
}

func (v StaticVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	return v.Identity, nil
}

// DevIdentity is the fixed development identity substituted when the real
// verifier fails and the dev fallback is enabled.
var DevIdentity = Identity{UID: "mock-user-123", Email: "user@example.com"}
