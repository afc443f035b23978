package user

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
	usecase UserUsecase
}

func NewHandler(usecase UserUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateUser")

	var req entity.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.CreateUser(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, "user created", result)
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListUsers")

	users, err := h.usecase.ListUsers(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "users listed", users)
}

// GetUser handles GET /users/{user_id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetUser")

	id := chi.URLParam(r, "user_id")

	result, err := h.usecase.GetUser(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "user fetched", result)
}

// UpdateUser handles PUT /users/{user_id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateUser")

	id := chi.URLParam(r, "user_id")

	var req entity.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.UpdateUser(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "user updated", result)
}

// DeleteUser handles DELETE /users/{user_id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteUser")

	id := chi.URLParam(r, "user_id")

	if err := h.usecase.DeleteUser(ctx, id); err != nil {
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
	case errors.Is(err, entity.ErrUserNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "user not found", err)
	case errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
