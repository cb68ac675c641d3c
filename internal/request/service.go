package request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redmonkez12/valentine-api/internal/logging"
	"github.com/redmonkez12/valentine-api/internal/user"
)

var (
	ErrEmptyRecipient   = errors.New("recipient name is required")
	ErrEmptyMessage     = errors.New("message is required")
	ErrEmptyResponder   = errors.New("responder name is required")
	ErrInvalidResponse  = errors.New("response must be accepted or declined")
	ErrCreatorNotFound  = errors.New("creator account not found")
	ErrIDSpaceExhausted = errors.New("could not allocate a unique public id")
)

// createIDAttempts bounds retries when a freshly generated public id
// happens to collide with an existing row.
const createIDAttempts = 3

// Store is the persistence surface the service needs
type Store interface {
	Create(ctx context.Context, id string, accountID int64, creatorName, recipientName, message string) (*ValentineRequest, error)
	GetByID(ctx context.Context, id string) (*ValentineRequest, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*ValentineRequest, error)
	ListByCreatorName(ctx context.Context, creatorName string) ([]*ValentineRequest, error)
	SetResponse(ctx context.Context, id, status, responderName string) (*ValentineRequest, error)
}

// AccountResolver looks up the creator's account for name denormalization
type AccountResolver interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// Service implements the valentine request operations
type Service struct {
	store    Store
	accounts AccountResolver
	cache    Cache
	logger   *logging.Logger
}

func NewService(store Store, accounts AccountResolver, cache Cache, logger *logging.Logger) *Service {
	return &Service{
		store:    store,
		accounts: accounts,
		cache:    cache,
		logger:   logger,
	}
}

// Create makes a new pending request owned by accountID. The creator's
// display name is copied onto the row at creation time; later account
// renames (not supported today) would not propagate.
func (s *Service) Create(ctx context.Context, accountID int64, recipientName, message string) (*ValentineRequest, error) {
	recipientName = strings.TrimSpace(recipientName)
	message = strings.TrimSpace(message)

	if recipientName == "" {
		return nil, ErrEmptyRecipient
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	creator, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to resolve creator: %w", err)
	}

	for attempt := 0; attempt < createIDAttempts; attempt++ {
		id, err := NewPublicID()
		if err != nil {
			return nil, err
		}

		created, err := s.store.Create(ctx, id, accountID, creator.Name, recipientName, message)
		if err != nil {
			if errors.Is(err, ErrDuplicateID) {
				s.logger.Warn("public id collision, retrying", "id", id)
				continue
			}
			return nil, err
		}

		return created, nil
	}

	return nil, ErrIDSpaceExhausted
}

// ListForAccount returns all requests owned by an account, newest first
func (s *Service) ListForAccount(ctx context.Context, accountID int64) ([]*ValentineRequest, error) {
	return s.store.ListByAccount(ctx, accountID)
}

// ListByCreatorName is the legacy unauthenticated lookup by display name.
// Names are not identities; treat results as best effort.
func (s *Service) ListByCreatorName(ctx context.Context, creatorName string) ([]*ValentineRequest, error) {
	return s.store.ListByCreatorName(ctx, creatorName)
}

// GetPublic returns the unauthenticated view of a request, served from
// cache when possible. Cache failures degrade to a database read.
func (s *Service) GetPublic(ctx context.Context, id string) (*PublicView, error) {
	if view, err := s.cache.GetPublicView(ctx, id); err == nil {
		return view, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("public view cache read failed", "id", id, "error", err.Error())
	}

	vr, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := PublicViewOf(vr)

	if err := s.cache.SetPublicView(ctx, view); err != nil {
		s.logger.Warn("public view cache write failed", "id", id, "error", err.Error())
	}

	return view, nil
}

// Respond records the recipient's answer. The write is unconditional:
// responding again overwrites the previous answer (last write wins).
func (s *Service) Respond(ctx context.Context, id, response, responderName string) (*ValentineRequest, error) {
	responderName = strings.TrimSpace(responderName)

	if response != StatusAccepted && response != StatusDeclined {
		return nil, ErrInvalidResponse
	}
	if responderName == "" {
		return nil, ErrEmptyResponder
	}

	updated, err := s.store.SetResponse(ctx, id, response, responderName)
	if err != nil {
		return nil, err
	}

	if err := s.cache.DeletePublicView(ctx, id); err != nil {
		s.logger.Warn("public view cache invalidation failed", "id", id, "error", err.Error())
	}

	return updated, nil
}
