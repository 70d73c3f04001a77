package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"scaletrend/internal/adapters/handler/http/middleware"
	"scaletrend/internal/core/domain"
	"scaletrend/internal/core/services"
)

type EntryHandler struct {
	svc *services.LedgerService
}

func NewEntryHandler(svc *services.LedgerService) *EntryHandler {
	return &EntryHandler{
		svc: svc,
	}
}

type logEntryRequest struct {
	Date   string  `json:"date" binding:"required"`
	Weight float64 `json:"weight" binding:"required"`
	Notes  string  `json:"notes"`
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	{
		entries.GET("", h.List)
		entries.PUT("", h.Log)
		entries.DELETE("/:date", h.Delete)
	}
}

// Log records a weight for a date; logging the same date again replaces the
// earlier measurement, so PUT is the natural verb.
func (h *EntryHandler) Log(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req logEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	entry, err := h.svc.UpsertEntry(c.Request.Context(), services.UpsertEntryInput{
		UserID: userID,
		Date:   req.Date,
		Weight: req.Weight,
		Notes:  req.Notes,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	window, err := domain.ParseWindow(c.Query("window"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.svc.ListEntries(c.Request.Context(), userID, window)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	if err := h.svc.RemoveEntry(c.Request.Context(), userID, c.Param("date")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidEntry) || errors.Is(err, domain.ErrInvalidGoal):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized access"})

	case errors.Is(err, domain.ErrEntryNotFound) || errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
