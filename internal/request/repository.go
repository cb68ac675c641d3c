package request

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/redmonkez12/valentine-api/internal/database"
)

var (
	ErrNotFound    = errors.New("request not found")
	ErrDuplicateID = errors.New("public id already taken")
)

// Repository handles valentine request persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new request row with the given public id.
// A primary key collision surfaces as ErrDuplicateID so the caller can
// retry with a fresh id.
func (r *Repository) Create(ctx context.Context, id string, accountID int64, creatorName, recipientName, message string) (*ValentineRequest, error) {
	dbReq := &database.ValentineRequest{
		ID:             id,
		AccountID:      accountID,
		CreatorName:    creatorName,
		RecipientName:  recipientName,
		Message:        message,
		ResponseStatus: StatusPending,
	}

	_, err := r.db.NewInsert().
		Model(dbReq).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return mapDBRequestToModel(dbReq), nil
}

// GetByID retrieves a single request by its public id
func (r *Repository) GetByID(ctx context.Context, id string) (*ValentineRequest, error) {
	dbReq := new(database.ValentineRequest)
	err := r.db.NewSelect().
		Model(dbReq).
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return mapDBRequestToModel(dbReq), nil
}

// ListByAccount returns all requests owned by an account, newest first
func (r *Repository) ListByAccount(ctx context.Context, accountID int64) ([]*ValentineRequest, error) {
	var dbReqs []*database.ValentineRequest
	err := r.db.NewSelect().
		Model(&dbReqs).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list requests by account: %w", err)
	}

	return mapDBRequestsToModels(dbReqs), nil
}

// ListByCreatorName returns all requests with a matching denormalized
// creator name, newest first. Display names are not unique, so this can
// span multiple accounts; it exists only for the legacy lookup route.
func (r *Repository) ListByCreatorName(ctx context.Context, creatorName string) ([]*ValentineRequest, error) {
	var dbReqs []*database.ValentineRequest
	err := r.db.NewSelect().
		Model(&dbReqs).
		Where("creator_name = ?", creatorName).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list requests by creator name: %w", err)
	}

	return mapDBRequestsToModels(dbReqs), nil
}

// SetResponse overwrites the response fields of a request. Last write
// wins: a request that was already answered is simply overwritten.
func (r *Repository) SetResponse(ctx context.Context, id, status, responderName string) (*ValentineRequest, error) {
	res, err := r.db.NewUpdate().
		Model((*database.ValentineRequest)(nil)).
		Set("response_status = ?", status).
		Set("responder_name = ?", responderName).
		Set("responded_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to set response: %w", err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

// mapDBRequestToModel converts database model to domain model
func mapDBRequestToModel(dbr *database.ValentineRequest) *ValentineRequest {
	return &ValentineRequest{
		ID:             dbr.ID,
		AccountID:      dbr.AccountID,
		CreatorName:    dbr.CreatorName,
		RecipientName:  dbr.RecipientName,
		Message:        dbr.Message,
		ResponseStatus: dbr.ResponseStatus,
		ResponderName:  dbr.ResponderName,
		CreatedAt:      dbr.CreatedAt,
		RespondedAt:    dbr.RespondedAt,
	}
}

func mapDBRequestsToModels(dbReqs []*database.ValentineRequest) []*ValentineRequest {
	reqs := make([]*ValentineRequest, 0, len(dbReqs))
	for _, dbr := range dbReqs {
		reqs = append(reqs, mapDBRequestToModel(dbr))
	}
	return reqs
}
