package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/skyfetch/internal/app"
	"github.com/vzahanych/skyfetch/internal/render"
	"github.com/vzahanych/skyfetch/internal/server/utils"
	"go.uber.org/zap"
)

type WeatherHandler struct {
	searcher *app.Searcher
	logger   *zap.Logger
}

func NewWeatherHandler(searcher *app.Searcher, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		searcher: searcher,
		logger:   logger,
	}
}

// Index serves the welcome page.
func (h *WeatherHandler) Index(c *gin.Context) {
	page := render.NewPage("")
	h.searcher.Welcome(page)
	c.HTML(http.StatusOK, render.PageTemplate, page)
}

// SearchPage runs a search and serves the resulting page. A blank city
// answers 204 so the browser keeps showing the current page.
func (h *WeatherHandler) SearchPage(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	req := WeatherRequest{City: strings.TrimSpace(c.Query("city"))}
	if req.City == "" {
		c.Status(http.StatusNoContent)
		return
	}

	page := render.NewPage(req.City)

	if errs := utils.ValidateStruct(req); errs != nil {
		reqLogger.Warn("Invalid search", zap.String("reason", errs[0].Message))
		page.RenderError(errs[0].Message)
		c.HTML(http.StatusBadRequest, render.PageTemplate, page)
		return
	}

	status := http.StatusOK
	if err := h.searcher.Search(utils.GetContextFromGinContext(c), req.City, page); err != nil {
		reqLogger.Info("Search page rendered with error", zap.Error(err))
		status = http.StatusNotFound
	}

	c.HTML(status, render.PageTemplate, page)
}

// GetWeather is the JSON form of a search.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req WeatherRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		reqLogger.Warn("Invalid request parameters", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request parameters",
			Code:  "INVALID_PARAMS",
		})
		return
	}
	req.City = strings.TrimSpace(req.City)

	if errs := utils.ValidateStruct(req); errs != nil {
		reqLogger.Warn("Invalid request parameters", zap.Any("errors", errs))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: errs,
		})
		return
	}

	reqLogger.Info("Processing weather request", zap.String("city", req.City))

	page := render.NewPage(req.City)
	if err := h.searcher.Search(utils.GetContextFromGinContext(c), req.City, page); err != nil {
		reqLogger.Warn("Weather request failed", zap.Error(err))
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: page.Error,
			Code:  "LOCATION_NOT_FOUND",
		})
		return
	}

	reqLogger.Info("Weather request completed successfully",
		zap.String("resolved_city", page.Current.City),
		zap.Int("forecast_days", len(page.Forecast)))

	c.JSON(http.StatusOK, WeatherResponse{
		Current:  *page.Current,
		Forecast: page.Forecast,
	})
}
