// Package admin exposes the operator surface: a read-only quota snapshot
// and a counter reset, both behind a shared password.
package admin

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/healthlink-platform/healthlink/internal/api"
	"github.com/healthlink-platform/healthlink/internal/quota"
)

type Handler struct {
	store    quota.Store
	password string
	validate *validator.Validate
}

func NewHandler(store quota.Store, password string) *Handler {
	return &Handler{
		store:    store,
		password: password,
		validate: validator.New(),
	}
}

type authRequest struct {
	Password string `json:"password" validate:"required"`
}

// Snapshot returns today's usage: {cap, count, remaining, dateKey}.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	snap, err := h.store.CurrentSnapshot(r.Context())
	if err != nil {
		slog.Warn("admin: quota snapshot unavailable", "error", err)
		api.JSONErrorMessage(w, http.StatusServiceUnavailable, "unavailable")
		return
	}

	api.JSON(w, http.StatusOK, snap)
}

// Reset deletes today's counter and returns the fresh snapshot.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	if err := h.store.Reset(r.Context()); err != nil {
		slog.Warn("admin: quota reset unavailable", "error", err)
		api.JSONErrorMessage(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	slog.Info("admin: daily quota counter reset")

	snap, err := h.store.CurrentSnapshot(r.Context())
	if err != nil {
		api.JSONErrorMessage(w, http.StatusServiceUnavailable, "unavailable")
		return
	}
	api.JSON(w, http.StatusOK, snap)
}

// authorize checks the shared password. With no password configured the
// admin surface is closed, not open.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request) bool {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.HandleError(w, api.ErrUnauthorized)
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		api.HandleError(w, api.ErrUnauthorized)
		return false
	}

	if h.password == "" ||
		subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		api.HandleError(w, api.ErrUnauthorized)
		return false
	}
	return true
}
