package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	mw "github.com/drishti/command-center-backend/internal/adapters/primary/http/middleware"
	"github.com/drishti/command-center-backend/internal/adapters/primary/validation"
	"github.com/drishti/command-center-backend/internal/core/ports"
)

const maxMessagesPerPage = 100

// MessageHandler handles direct messages between users.
type MessageHandler struct {
	messageService ports.MessageService
	errorHandler   *ErrorHandler
	logger         *slog.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(
	messageService ports.MessageService,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		errorHandler:   errorHandler,
		logger:         logger.With("handler", "message"),
	}
}

// RegisterRoutes sets up the routing for the message endpoints.
func (h *MessageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleListMessages)
	r.Post("/", h.HandleSendMessage)
}

// SendMessageRequest defines the expected JSON body for a direct message.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

// Validate validates the send message request.
func (r *SendMessageRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("recipientId", r.RecipientID).
		UUID("recipientId", r.RecipientID)

	v.Required("body", r.Body).
		MaxLength("body", r.Body, 2000)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// HandleListMessages handles GET /messages
func (h *MessageHandler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	pagination := validation.ParsePagination(r, maxMessagesPerPage)

	messages, err := h.messageService.ListForUser(r.Context(), claims.UserID, pagination.Limit, pagination.Offset)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	WriteList(w, messages)
}

// HandleSendMessage handles POST /messages
func (h *MessageHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	claims, ok := mw.GetClaims(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Not authorized", Code: "UNAUTHORIZED"})
		return
	}

	req, err := validation.DecodeAndValidate[SendMessageRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	message, err := h.messageService.Send(r.Context(), claims.UserID, recipientID, req.Body)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("message sent",
		"message_id", message.ID,
		"sender_id", claims.UserID,
		"recipient_id", recipientID,
	)

	WriteCreated(w, message)
}
