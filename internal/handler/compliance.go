package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sankalp-nadiger/Auditryx/internal/apierror"
	"github.com/sankalp-nadiger/Auditryx/internal/dto"
	"github.com/sankalp-nadiger/Auditryx/internal/service"

	"github.com/gin-gonic/gin"
)

type ComplianceHandler struct{ svc service.ComplianceService }

func NewComplianceHandler(svc service.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{svc: svc}
}

func (h *ComplianceHandler) Create(c *gin.Context) {
	var req dto.CreateComplianceRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComplianceHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	resp, err := h.svc.List(c.Request.Context(), offset, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list compliance records"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplianceHandler) ListBySupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "supplier_id")
	if !ok {
		return
	}
	resp, err := h.svc.ListBySupplier(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list compliance records"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplianceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateComplianceRecordRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, apierror.New("Record not found"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ComplianceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Record not found"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
