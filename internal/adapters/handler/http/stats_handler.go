package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scaletrend/internal/adapters/handler/http/middleware"
	"scaletrend/internal/core/domain"
	"scaletrend/internal/core/services"
)

type StatsHandler struct {
	svc *services.LedgerService
}

func NewStatsHandler(svc *services.LedgerService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.Get)
}

func (h *StatsHandler) Get(c *gin.Context) {
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

	stats, err := h.svc.Stats(c.Request.Context(), userID, window)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
