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

type WeatherHandler struct {
	weather service.WeatherService
	ranking service.RankingService
}

func NewWeatherHandler(weather service.WeatherService, ranking service.RankingService) *WeatherHandler {
	return &WeatherHandler{weather: weather, ranking: ranking}
}

func (h *WeatherHandler) Today(c *gin.Context) {
	id, ok := parseIDParam(c, "supplier_id")
	if !ok {
		return
	}
	resp, err := h.weather.Today(c.Request.Context(), id)
	if err != nil {
		h.writeWeatherError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WeatherHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c, "supplier_id")
	if !ok {
		return
	}
	resp, err := h.weather.History(c.Request.Context(), id)
	if err != nil {
		h.writeWeatherError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RecommendSupplier godoc
// @Summary Rank all suppliers by delivery feasibility
// @Tags weather
// @Produce json
// @Param user_lat query number true "Buyer latitude"
// @Param user_lon query number true "Buyer longitude"
// @Success 200 {object} dto.RankingResponse
// @Failure 400 {object} apierror.APIError
// @Failure 500 {object} apierror.APIError
// @Router /v1/weather/recommend-supplier [get]
func (h *WeatherHandler) RecommendSupplier(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("user_lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("user_lat must be a number"))
		return
	}
	lon, err := strconv.ParseFloat(c.Query("user_lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("user_lon must be a number"))
		return
	}

	resp, err := h.ranking.RankSuppliers(c.Request.Context(), lat, lon)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WeatherHandler) CheckImpact(c *gin.Context) {
	var req dto.CheckImpactRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.weather.CheckImpact(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return
		}
		h.writeWeatherError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WeatherHandler) writeWeatherError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSupplierNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Supplier not found"))
	case errors.Is(err, service.ErrWeatherUnavailable):
		c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	}
}
