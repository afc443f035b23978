package personalisation

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
	usecase PersonalisationUsecase
}

func NewHandler(usecase PersonalisationUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreatePersonalisation handles POST /personalisation?user_id=
func (h *Handler) CreatePersonalisation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreatePersonalisation")

	var req entity.CreatePersonalisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	userID := r.URL.Query().Get("user_id")

	p, err := h.usecase.CreatePersonalisation(ctx, userID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, "personalisation created", p)
}

// GetPersonalisation handles GET /personalisation/{personalisation_id}
func (h *Handler) GetPersonalisation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetPersonalisation")

	id := chi.URLParam(r, "personalisation_id")

	p, err := h.usecase.GetPersonalisation(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "personalisation fetched", p)
}

// UpdatePersonalisation handles PUT /personalisation/{personalisation_id}
func (h *Handler) UpdatePersonalisation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdatePersonalisation")

	id := chi.URLParam(r, "personalisation_id")

	var req entity.UpdatePersonalisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p, err := h.usecase.UpdatePersonalisation(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "personalisation updated", p)
}

// DeletePersonalisation handles DELETE /personalisation/{personalisation_id}
func (h *Handler) DeletePersonalisation(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeletePersonalisation")

	id := chi.URLParam(r, "personalisation_id")

	if err := h.usecase.DeletePersonalisation(ctx, id); err != nil {
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
	case errors.Is(err, entity.ErrPersonalisationNotFound), errors.Is(err, entity.ErrUserNotFound):
		h.respondError(ctx, w, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, entity.ErrMissingField):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
