package models

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT payload identifying the caller. A nil *Claims means the
// request carried no usable token; individual operations decide whether that
// is acceptable.
type Claims struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	IsMentor   bool   `json:"isMentor"`
	IsAdmin    bool   `json:"isAdmin"`
	IsVerified bool   `json:"isVerified"`

	// Token is the raw bearer token the claims were decoded from. It is
	// attached by the auth middleware and never serialized into a token.
	Token string `json:"-"`

	jwt.RegisteredClaims
}

// AuthData is the login/verify response. IsAdmin and IsVerified are nil for
// students, which only ever hold the base role.
type AuthData struct {
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	TokenExpiration int    `json:"tokenExpiration"`
	IsMentor        bool   `json:"isMentor"`
	IsAdmin         *bool  `json:"isAdmin,omitempty"`
	IsVerified      *bool  `json:"isVerified,omitempty"`
}

// UnregRecord is the audit tuple returned by unregisterAllStudents.
type UnregRecord struct {
	StudentID string `json:"studentId"`
	TaskID    string `json:"taskId"`
}

type claimsContextKey struct{}

// WithClaims returns a context carrying the caller's claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the caller's claims, or nil when the request is
// unauthenticated.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey{}).(*Claims)
	return claims
}
