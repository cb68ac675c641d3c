package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redmonkez12/valentine-api/internal/logging"
	"github.com/redmonkez12/valentine-api/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameRequired       = errors.New("name is required")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// AuthResult is a token paired with the account it identifies
type AuthResult struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

// Service handles authentication business logic
type Service struct {
	userRepo     UserRepository
	tokenService TokenService
	logger       *logging.Logger
}

func NewService(userRepo UserRepository, tokenService TokenService, logger *logging.Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		tokenService: tokenService,
		logger:       logger,
	}
}

// Register creates a new account and logs it in, returning a token alongside
// the account. Duplicate emails surface as user.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	// bcrypt silently truncates beyond 72 bytes on older versions; newer
	// versions error. Reject up front either way.
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}
	if name == "" {
		return nil, ErrNameRequired
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser, err := s.userRepo.Create(ctx, email, passwordHash, name)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	token, err := s.tokenService.CreateToken(newUser.ID, newUser.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &AuthResult{Token: token, User: newUser}, nil
}

// Login authenticates an account and returns a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !CheckPassword(existing.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(existing.ID, existing.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create token: %w", err)
	}

	return &AuthResult{Token: token, User: existing}, nil
}

// CurrentUser resolves the account behind a verified token's user id
func (s *Service) CurrentUser(ctx context.Context, userID int64) (*user.User, error) {
	existing, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return existing, nil
}
