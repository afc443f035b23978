package build

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/pkg/logger"
	"github.com/pcforge/builder-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase BuildUsecase
}

func NewHandler(usecase BuildUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// GenerateBuild handles POST /aibuilder
func (h *Handler) GenerateBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateBuild")

	var req entity.GenerateBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctxzap.Info(ctx, "generate build requested",
		zap.Float64("budget", req.Budget),
		zap.String("purpose", req.Purpose),
	)

	result, err := h.usecase.GenerateBuild(ctx, req.ToUserInput())
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "build generated", result)
}

// CreateBuild handles POST /builds
func (h *Handler) CreateBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateBuild")

	var req entity.CreateBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.CreateBuild(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, "build created", result)
}

// ListBuilds handles GET /builds
func (h *Handler) ListBuilds(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListBuilds")

	ownerID := r.URL.Query().Get("owner_id")

	builds, err := h.usecase.ListBuilds(ctx, ownerID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "builds listed", builds)
}

// GetBuild handles GET /builds/{build_id}
func (h *Handler) GetBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetBuild")

	id := chi.URLParam(r, "build_id")

	result, err := h.usecase.GetBuild(ctx, id)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "build fetched", result)
}

// UpdateBuild handles PUT /builds/{build_id}
func (h *Handler) UpdateBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpdateBuild")

	id := chi.URLParam(r, "build_id")

	var req entity.UpdateBuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.usecase.UpdateBuild(ctx, id, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, "build updated", result)
}

// DeleteBuild handles DELETE /builds/{build_id}
func (h *Handler) DeleteBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DeleteBuild")

	id := chi.URLParam(r, "build_id")

	if err := h.usecase.DeleteBuild(ctx, id); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.NoContent(w)
}

// ExportBuild handles GET /builds/{build_id}/export?format=pdf|docx|md
func (h *Handler) ExportBuild(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportBuild")

	id := chi.URLParam(r, "build_id")

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatPDF
	}

	data, contentType, filename, err := h.usecase.ExportBuild(ctx, id, format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
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
	case errors.Is(err, entity.ErrBuildNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "build not found", err)
	case errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
