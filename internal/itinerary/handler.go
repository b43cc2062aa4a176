package itinerary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.POST("/v1/itineraries/location", h.LocationChangedHandler)
	router.POST("/v1/itineraries/advanced", h.AdvancedSearchHandler)
	router.POST("/v1/itineraries/view", h.ViewHandler)
}

type locationRequest struct {
	Location string `json:"location"`
}

// LocationChangedHandler runs the default fixed-window search for the
// submitted location and returns the resulting view.
func (h *Handler) LocationChangedHandler(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.SearchByLocation(c.Request.Context(), req.Location)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AdvancedSearchHandler submits the advanced-search form. Invalid
// forms are rejected with the offending field names and no upstream
// request is issued.
func (h *Handler) AdvancedSearchHandler(c *gin.Context) {
	var form AdvancedForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	response, err := h.service.SearchAdvanced(c.Request.Context(), form)
	if err != nil {
		sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ViewHandler re-renders the current result set under new filter/sort
// options without touching the network.
func (h *Handler) ViewHandler(c *gin.Context) {
	var opts ViewOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid JSON body",
			"code":  ErrorCodeValidation,
		})
		return
	}

	c.JSON(http.StatusOK, h.service.View(opts))
}

func sendError(c *gin.Context, err error) {
	var appErr *AppError

	if errors.As(err, &appErr) {
		body := gin.H{
			"error": appErr.Message,
			"code":  appErr.Code,
		}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.Status, body)
		return
	}

	// Default to 500 for unknown errors
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"code":    ErrorCodeInternalFailure,
		"details": err.Error(),
	})
}
