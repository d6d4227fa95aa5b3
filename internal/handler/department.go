package handler

import (
	"log/slog"
	"net/http"

	"sirtis/internal/domain/services"
	"sirtis/internal/httputil"
)

// DepartmentHandler handles department HTTP requests
type DepartmentHandler struct {
	deptService services.DepartmentService
	logger      *slog.Logger
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(deptService services.DepartmentService, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		deptService: deptService,
		logger:      logger,
	}
}

// ListDepartments lists departments, flat by default or nested with ?tree=true
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("tree") == "true" {
		nodes, err := h.deptService.GetDepartmentTree(r.Context())
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, nodes)
		return
	}

	departments, err := h.deptService.ListDepartments(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, departments)
}

// CreateDepartment adds a department or sub-unit
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDepartmentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dept, err := h.deptService.CreateDepartment(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, dept)
}
