package domain

import (
	"context"
	"time"
)

// TokenClaims is the identity assertion carried by a signed token.
type TokenClaims struct {
	Email      string
	IsVerified bool
}

type AuthRepo interface {
	GenerateToken(email string, isVerified bool, iat, exp time.Time) (string, error)
	VerifyToken(token string) (*TokenClaims, error)
}

type LoginResult struct {
	Token     string
	FirstName string
	LastName  string
}

type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CheckCurrentPassword(ctx context.Context, email, currentPassword string) error
	RequestPasswordReset(ctx context.Context, origin, email string) error
	CommitPasswordReset(ctx context.Context, email, resetCode, newPassword, confirmNewPassword string) error
}
