package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing authentication token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Claims are the JWT claims the gateway issues for an authenticated user.
type Claims struct {
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTValidator validates HS256-signed bearer tokens.
type JWTValidator struct {
	secretKey []byte
	issuer    string
}

// NewJWTValidator creates a validator for tokens signed with secret and
// issued by issuer.
func NewJWTValidator(secret, issuer string) *JWTValidator {
	return &JWTValidator{
		secretKey: []byte(secret),
		issuer:    issuer,
	}
}

// ValidateToken parses and verifies a bearer token and returns its claims.
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// SubjectOf builds the caller identity from validated claims.
func SubjectOf(claims *Claims) Subject {
	return Subject{
		ID:    claims.Subject,
		Name:  claims.Username,
		Email: claims.Email,
		Roles: claims.Roles,
	}
}
