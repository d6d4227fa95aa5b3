package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"sirtis/internal/httputil"
	"sirtis/internal/service/reconcile"
)

// reconcileRequest is the operation's request body. An empty body means
// a commit run.
type reconcileRequest struct {
	DryRun bool `json:"dryRun"`
}

// ReconcileHandler triggers reconciliation passes
type ReconcileHandler struct {
	reconciler *reconcile.Service
	logger     *slog.Logger
}

// NewReconcileHandler creates a new reconcile handler
func NewReconcileHandler(reconciler *reconcile.Service, logger *slog.Logger) *ReconcileHandler {
	return &ReconcileHandler{
		reconciler: reconciler,
		logger:     logger,
	}
}

// Run executes a reconciliation pass. Admin-only; the route is wrapped
// in middleware.RequireAdmin.
// POST /api/admin/documents/reconcile
func (h *ReconcileHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.logger.Info("reconciliation requested",
		"dry_run", req.DryRun,
		"user_id", httputil.GetUserID(r),
	)

	result, err := h.reconciler.Run(r.Context(), req.DryRun)
	if err != nil {
		h.logger.Error("reconciliation failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
