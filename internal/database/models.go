package database

import (
	"time"

	"github.com/uptrace/bun"
)

// Account is the persisted row for a registered user
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:a"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	Name         string    `bun:"name,notnull"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// ValentineRequest is the persisted row for a shareable valentine request.
// The primary key is the short public id, not a serial.
type ValentineRequest struct {
	bun.BaseModel `bun:"table:valentine_requests,alias:vr"`

	ID             string     `bun:"id,pk"`
	AccountID      int64      `bun:"account_id,notnull"`
	CreatorName    string     `bun:"creator_name,notnull"`
	RecipientName  string     `bun:"recipient_name,notnull"`
	Message        string     `bun:"message,notnull"`
	ResponseStatus string     `bun:"response_status,notnull,default:'pending'"`
	ResponderName  *string    `bun:"responder_name"`
	CreatedAt      time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	RespondedAt    *time.Time `bun:"responded_at"`
}
