package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/valentine-api/internal/auth"
	"github.com/redmonkez12/valentine-api/internal/httputil"
	"github.com/redmonkez12/valentine-api/internal/logging"
)

// Handler contains HTTP handlers for valentine request endpoints
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateRequest represents the request-creation body
type CreateRequest struct {
	Message       string `json:"message"`
	RecipientName string `json:"recipient_name"`
}

// RespondRequest represents the public respond body
type RespondRequest struct {
	Response      string `json:"response"`
	ResponderName string `json:"responder_name"`
}

// CreateResponse is the creation result plus the computed share URL
type CreateResponse struct {
	ID            string `json:"id"`
	CreatorName   string `json:"creator_name"`
	RecipientName string `json:"recipient_name"`
	Message       string `json:"message"`
	ShareURL      string `json:"share_url"`
}

// Create handles authenticated request creation
// @Summary      Create a valentine request
// @Description  Create a shareable request with a message for a named recipient.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRequest true "Message and recipient"
// @Success      200 {object} CreateResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields"
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "Account no longer exists"
// @Router       /api/requests [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	accountID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid create request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), accountID, req.RecipientName, req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyRecipient) || errors.Is(err, ErrEmptyMessage) {
			logger.Warn("create failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "message and recipient name are required", httputil.CodeMissingFields, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrCreatorNotFound) {
			logger.Warn("create failed: creator not found", "account_id", accountID)
			httputil.RespondErrorWithCode(w, "user not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("create failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to create request", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("request created", "request_id", created.ID, "account_id", accountID)

	httputil.RespondJSON(w, CreateResponse{
		ID:            created.ID,
		CreatorName:   created.CreatorName,
		RecipientName: created.RecipientName,
		Message:       created.Message,
		ShareURL:      shareURL(r, created.ID),
	}, http.StatusOK)
}

// ListMine lists the authenticated account's own requests
// @Summary      List own requests
// @Description  List all requests created by the authenticated account, newest first.
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} ValentineRequest
// @Failure      401 {object} httputil.ErrorResponse "Missing or invalid token"
// @Router       /api/requests [get]
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	accountID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	requests, err := h.service.ListForAccount(r.Context(), accountID)
	if err != nil {
		logger.Error("failed to list requests", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch requests", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, requests, http.StatusOK)
}

// ListByCreator is the legacy unauthenticated lookup by creator display name
// @Summary      List requests by creator name (legacy)
// @Description  List requests whose denormalized creator name matches. Display names are not unique; kept for backward compatibility.
// @Tags         requests
// @Produce      json
// @Param        creatorName path string true "Creator display name"
// @Success      200 {array} ValentineRequest
// @Router       /api/requests/creator/{creatorName} [get]
func (h *Handler) ListByCreator(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	creatorName := chi.URLParam(r, "creatorName")

	requests, err := h.service.ListByCreatorName(r.Context(), creatorName)
	if err != nil {
		logger.Error("failed to list requests by creator", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch requests", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, requests, http.StatusOK)
}

// GetPublic serves the unauthenticated view behind the share link
// @Summary      Get a request's public view
// @Description  Fetch the fields safe for the recipient: creator name, message, status, responder.
// @Tags         requests
// @Produce      json
// @Param        id path string true "Public request id"
// @Success      200 {object} PublicView
// @Failure      404 {object} httputil.ErrorResponse "Unknown id"
// @Router       /api/requests/{id} [get]
func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id := chi.URLParam(r, "id")

	view, err := h.service.GetPublic(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "request not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to fetch request", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to fetch request", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, view, http.StatusOK)
}

// Respond records the recipient's answer to a request
// @Summary      Respond to a request
// @Description  Accept or decline a request. No authentication; the public id is the secret.
// @Tags         requests
// @Accept       json
// @Produce      json
// @Param        id path string true "Public request id"
// @Param        request body RespondRequest true "Response and responder name"
// @Success      200 {object} ValentineRequest
// @Failure      400 {object} httputil.ErrorResponse "Missing fields or invalid response"
// @Failure      404 {object} httputil.ErrorResponse "Unknown id"
// @Router       /api/requests/{id}/respond [post]
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	id := chi.URLParam(r, "id")

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid respond request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	updated, err := h.service.Respond(r.Context(), id, req.Response, req.ResponderName)
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrEmptyResponder) {
			logger.Warn("respond failed: validation error", "error", err.Error())
			httputil.RespondErrorWithCode(w, "response and responder name are required", httputil.CodeInvalidResponse, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrNotFound) {
			httputil.RespondErrorWithCode(w, "request not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("respond failed: internal error", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to respond to request", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	logger.Info("request answered", "request_id", id, "status", updated.ResponseStatus)

	httputil.RespondJSON(w, updated, http.StatusOK)
}

// shareURL derives the recipient-facing link from the inbound request.
// Convenience for the client; nothing about it is stored.
func shareURL(r *http.Request, id string) string {
	scheme := "http"
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	} else if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/request/%s", scheme, r.Host, id)
}
