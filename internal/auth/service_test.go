package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/valentine-api/internal/logging"
	"github.com/redmonkez12/valentine-api/internal/user"
)

// --- fakes ---

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[int64]*user.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[int64]*user.User),
		nextID:  1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, email, passwordHash, name string) (*user.User, error) {
	if _, taken := f.byEmail[email]; taken {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{
		ID:           f.nextID,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.byEmail[email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo, *PasetoService) {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := newTestPasetoService(t, time.Hour)
	svc := NewService(repo, tokens, logging.NewLogger(true))
	return svc, repo, tokens
}

// --- tests ---

func TestService_Register(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "a@x.com", "pw123", "Ann")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, "Ann", result.User.Name)
	assert.NotEqual(t, "pw123", result.User.PasswordHash)

	// The issued token resolves back to the same account
	claims, err := tokens.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		userName string
		wantErr  error
	}{
		{"missing email", "", "pw123", "Ann", ErrEmailRequired},
		{"whitespace email", "   ", "pw123", "Ann", ErrEmailRequired},
		{"missing password", "a@x.com", "", "Ann", ErrPasswordRequired},
		{"missing name", "a@x.com", "pw123", "", ErrNameRequired},
		{"whitespace name", "a@x.com", "pw123", "  ", ErrNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.email, tt.password, tt.userName)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw123", "Ann")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "other-pw", "Impostor")
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestService_Login(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "pw123", "Ann")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "a@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestService_Login_NoAccountEnumeration(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw123", "Ann")
	require.NoError(t, err)

	// Wrong password and unknown email must yield the identical error
	_, wrongPass := svc.Login(ctx, "a@x.com", "wrong")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "pw123")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())
}

func TestService_Login_MissingFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "a@x.com", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_CurrentUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "a@x.com", "pw123", "Ann")
	require.NoError(t, err)

	current, err := svc.CurrentUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", current.Name)

	_, err = svc.CurrentUser(ctx, 9999)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
