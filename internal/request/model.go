package request

import "time"

// Response status values. A request starts pending and is flipped by the
// recipient through the public respond endpoint.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// ValentineRequest is the owner-visible view of a request
type ValentineRequest struct {
	ID             string     `json:"id"`
	AccountID      int64      `json:"account_id"`
	CreatorName    string     `json:"creator_name"`
	RecipientName  string     `json:"recipient_name"`
	Message        string     `json:"message"`
	ResponseStatus string     `json:"response_status"`
	ResponderName  *string    `json:"responder_name"`
	CreatedAt      time.Time  `json:"created_at"`
	RespondedAt    *time.Time `json:"responded_at"`
}

// PublicView is the subset safe to show an unauthenticated visitor who
// followed the share link. It deliberately omits the owning account id
// and timestamps.
type PublicView struct {
	ID             string  `json:"id"`
	CreatorName    string  `json:"creator_name"`
	Message        string  `json:"message"`
	ResponseStatus string  `json:"response_status"`
	ResponderName  *string `json:"responder_name"`
}

// PublicViewOf projects a request onto its unauthenticated view
func PublicViewOf(vr *ValentineRequest) *PublicView {
	return &PublicView{
		ID:             vr.ID,
		CreatorName:    vr.CreatorName,
		Message:        vr.Message,
		ResponseStatus: vr.ResponseStatus,
		ResponderName:  vr.ResponderName,
	}
}
