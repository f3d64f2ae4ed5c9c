package handler

import (
	"errors"
	"net/http"
	"path/filepath"

	"github.com/sankalp-nadiger/Auditryx/internal/apierror"
	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/service"

	"github.com/gin-gonic/gin"
)

type SuppliersHandler struct{ svc service.SupplierService }

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

func (h *SuppliersHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SuppliersHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list suppliers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) GetByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateSupplierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Metrics godoc
// @Summary Aggregated compliance metrics for a supplier
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Param range query string false "6M | 1Y | ALL" default(6M)
// @Success 200 {object} dto.SupplierMetricsResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/suppliers/{id}/metrics [get]
func (h *SuppliersHandler) Metrics(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	window := service.MetricsWindow(c.DefaultQuery("range", string(service.Window6M)))

	resp, err := h.svc.Metrics(c.Request.Context(), id, window)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWindow):
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		case errors.Is(err, service.ErrSupplierNotFound):
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
		default:
			c.JSON(http.StatusInternalServerError, apierror.New("Failed to compute metrics"))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Insight(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Insight(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Report streams the audit PDF as a download.
func (h *SuppliersHandler) Report(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	path, err := h.svc.ReportPDF(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to generate report"))
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}

// EmailReport queues the async render-and-mail job.
func (h *SuppliersHandler) EmailReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.EmailReport(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusAccepted, resp)
}
