package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickbite/oms/pkg/apperr"
	"github.com/spf13/viper"
)

// Role identifies which surface a token grants access to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDelivery Role = "delivery"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

const tokenTTL = 24 * time.Hour

// Claims is the signed identity carried by every bearer token.
type Claims struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
	Role     Role   `json:"role"`
	jwt.RegisteredClaims
}

// Sign issues a bearer token for the given identity.
func Sign(userID int64, email string, verified bool, role Role) (string, error) {
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Verified: verified,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
}

// Verify parses a bearer token, failing Unauthorized on any defect.
func Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return secret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}

	return claims, nil
}

func secret() []byte {
	return []byte(viper.GetString("auth.jwt_secret"))
}

type claimsKey struct{}

// WithClaims stores verified claims on the request context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext fetches the claims stored by the auth middleware,
// failing Unauthorized when the request carried none.
func ClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	if !ok {
		return nil, apperr.Unauthorized("authentication required")
	}

	return claims, nil
}
