package healthquery

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/healthlink-platform/healthlink/internal/api"
	"github.com/healthlink-platform/healthlink/internal/quota"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
	}
}

// Ping answers GET on the query route.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Health Link API is alive",
	})
}

// Query is the single answer/checklist endpoint, discriminated by
// mode/stage. Checklist-only requests bypass the quota entirely.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.NewValidationError("question or valid mode/stage is required"))
		return
	}

	ctx := r.Context()

	switch {
	case req.Mode == "intake" && req.Stage == "followup":
		input := trimInput(req.Input)
		if input == "" {
			api.HandleError(w, api.NewBadRequestError("input is required"))
			return
		}
		res, err := h.svc.Followup(ctx, input)
		h.respond(w, res, err)

	case req.Mode == "intake" && req.Stage == "final":
		input := trimInput(req.Input)
		if input == "" {
			api.HandleError(w, api.NewBadRequestError("input is required"))
			return
		}
		res, err := h.svc.IntakeFinal(ctx, input, req.QA)
		h.respond(w, res, err)

	case req.Mode == "info" && req.Stage == "answer":
		input := trimInput(req.Input)
		if input == "" {
			api.HandleError(w, api.NewBadRequestError("input is required"))
			return
		}
		res, err := h.svc.Info(ctx, input)
		h.respond(w, res, err)

	case req.Mode == "" && req.Stage == "":
		// Legacy shape: bare question.
		question := trimInput(req.Question)
		if question == "" {
			api.HandleError(w, api.NewBadRequestError("question is required"))
			return
		}
		res, err := h.svc.Info(ctx, question)
		h.respond(w, res, err)

	case req.Mode == "intake":
		api.HandleError(w, api.NewBadRequestError("stage must be 'followup' or 'final'"))

	default:
		api.HandleError(w, api.NewBadRequestError("question or valid mode/stage is required"))
	}
}

// respond maps service outcomes onto the error taxonomy: quota outcomes stay
// distinguishable, everything else collapses to a generic internal error.
func (h *Handler) respond(w http.ResponseWriter, data any, err error) {
	switch {
	case err == nil:
		api.JSON(w, http.StatusOK, data)
	case errors.Is(err, ErrQuotaExceeded):
		api.HandleError(w, api.ErrQuotaExceeded)
	case errors.Is(err, quota.ErrUnavailable):
		slog.Warn("quota store unavailable", "error", err)
		api.HandleError(w, api.ErrQuotaUnavailable)
	default:
		slog.Error("query failed", "error", err)
		api.HandleError(w, api.ErrInternalServer)
	}
}
