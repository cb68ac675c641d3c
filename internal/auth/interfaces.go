package auth

import (
	"context"

	"github.com/redmonkez12/valentine-api/internal/user"
)

// TokenService defines the interface for token creation and validation
type TokenService interface {
	CreateToken(userID int64, email string) (string, error)
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// UserRepository defines the account storage operations the auth service needs
type UserRepository interface {
	Create(ctx context.Context, email, passwordHash, name string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
