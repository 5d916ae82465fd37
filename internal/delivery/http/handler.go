package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tolmol/backend/internal/domain"
	"github.com/tolmol/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	shopping *usecase.ShoppingService
	weather  *usecase.WeatherService
}

// NewHandler creates a new HTTP handler
func NewHandler(shopping *usecase.ShoppingService, weather *usecase.WeatherService) *Handler {
	return &Handler{
		shopping: shopping,
		weather:  weather,
	}
}

// searchRequest is the body of the product search and compare endpoints
type searchRequest struct {
	Items    []domain.StructuredItem `json:"items"`
	Location string                  `json:"location"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tolmol-backend",
		"version": "1.0.0",
	})
}

// SearchProducts handles scored-mode product search requests. Matched
// groups are promoted and sorted per item; nothing is discarded.
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.shopping == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Product search not configured"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid input parameters",
			"error":   err.Error(),
		})
		return
	}

	result, err := h.shopping.MatchItems(c.Request.Context(), req.Items, req.Location, usecase.ModeScored)
	if err != nil {
		h.writeShoppingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully fetched product data for %d items in %s", result.TotalItems, result.Location),
		"data":    result,
	})
}

// SearchProductsGET is a convenience form for simple testing: items as a
// comma-separated list of product names.
func (h *Handler) SearchProductsGET(c *gin.Context) {
	if h.shopping == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Product search not configured"})
		return
	}

	itemsParam := c.DefaultQuery("items", "milk")
	location := c.Query("location")
	if location == "" {
		location = c.Query("city")
	}

	var items []domain.StructuredItem
	for _, name := range strings.Split(itemsParam, ",") {
		if name = strings.TrimSpace(name); name != "" {
			items = append(items, domain.StructuredItem{ProductName: name})
		}
	}

	result, err := h.shopping.MatchItems(c.Request.Context(), items, location, usecase.ModeScored)
	if err != nil {
		h.writeShoppingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully fetched product data for %d items in %s", result.TotalItems, result.Location),
		"data":    result,
	})
}

// CompareProducts handles strict-mode price comparison requests. Every
// canonical store appears exactly once per item, and a per-store cart
// summary is included.
func (h *Handler) CompareProducts(c *gin.Context) {
	if h.shopping == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Price comparison not configured"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid input parameters",
			"error":   err.Error(),
		})
		return
	}

	result, err := h.shopping.MatchItems(c.Request.Context(), req.Items, req.Location, usecase.ModeStrict)
	if err != nil {
		h.writeShoppingError(c, err)
		return
	}

	stores := h.shopping.Roster().BuildStoreComparison(result)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully compared prices for %d items in %s", result.TotalItems, result.Location),
		"data": gin.H{
			"location":    result.Location,
			"coordinates": result.Coordinates,
			"items":       result.Results,
			"stores":      stores,
			"totalItems":  result.TotalItems,
			"timestamp":   result.Timestamp,
		},
	})
}

// GetWeather handles weather forecast requests
func (h *Handler) GetWeather(c *gin.Context) {
	if h.weather == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Weather forecast not configured"})
		return
	}

	city := c.Query("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid input parameters",
			"error":   "city: required",
		})
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "1"))
	opts := domain.ForecastOptions{
		Days:                 days,
		IncludeHumidity:      c.Query("humidity") == "true",
		IncludePrecipitation: c.Query("precipitation") == "true",
		IncludeWindSpeed:     c.Query("wind") == "true",
	}

	forecast, err := h.weather.ForecastByCity(c.Request.Context(), city, opts)
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"message": fmt.Sprintf("No location found for %q", city),
				"error":   err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch weather forecast",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Weather forecast for %s", forecast.DisplayName),
		"data":    forecast,
	})
}

// MCPReady is a lightweight readiness probe. The MCP handler itself only
// accepts POST, so simple browser GETs and health checks land here.
func (h *Handler) MCPReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "MCP endpoint ready",
	})
}

// writeShoppingError maps engine errors onto HTTP statuses: validation
// errors are client faults, an unresolvable location is an upstream fault,
// anything else is internal.
func (h *Handler) writeShoppingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid input parameters",
			"error":   err.Error(),
		})
	case errors.Is(err, domain.ErrLocationNotFound):
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to resolve location",
			"error":   err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
			"error":   err.Error(),
		})
	}
}
