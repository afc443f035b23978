package chatroom

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/pkg/logger"
	"github.com/pcforge/builder-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase ChatUsecase
}

func NewHandler(usecase ChatUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateChatroom handles POST /chatrooms
func (h *Handler) CreateChatroom(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateChatroom")

	var req entity.CreateChatroomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	room, err := h.usecase.CreateChatroom(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, "chatroom created", room)
}

// ListChatrooms handles GET /chatrooms?user_id=
func (h *Handler) ListChatrooms(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListChatrooms")

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "user_id query parameter is required", nil)
		return
	}

	rooms, err := h.usecase.ListChatroomsByUser(ctx, userID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "chatrooms listed", rooms)
}

// GetChatroom handles GET /chatrooms/{chatroom_id}
func (h *Handler) GetChatroom(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetChatroom")

	id := chi.URLParam(r, "chatroom_id")

	room, err := h.usecase.GetChatroom(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "chatroom fetched", room)
}

// DeleteChatroom handles DELETE /chatrooms/{chatroom_id}
func (h *Handler) DeleteChatroom(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteChatroom")

	id := chi.URLParam(r, "chatroom_id")

	if err := h.usecase.DeleteChatroom(ctx, id); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// AddMessage handles POST /chatrooms/{chatroom_id}/messages
func (h *Handler) AddMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AddMessage")

	id := chi.URLParam(r, "chatroom_id")

	var req entity.AddMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	reply, err := h.usecase.AddMessage(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, "reply generated", reply)
}

// DeleteMessage handles DELETE /chatrooms/{chatroom_id}/messages/{message_id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteMessage")

	chatroomID := chi.URLParam(r, "chatroom_id")
	messageID := chi.URLParam(r, "message_id")

	if err := h.usecase.DeleteMessage(ctx, chatroomID, messageID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrChatroomNotFound),
		errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrMessageNotFound):
		h.respondError(ctx, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, entity.ErrEmptyMessage), errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
