package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scaletrend/internal/adapters/handler/http/middleware"
	"scaletrend/internal/core/services"
)

type GoalHandler struct {
	svc *services.LedgerService
}

func NewGoalHandler(svc *services.LedgerService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type setGoalRequest struct {
	TargetWeight float64 `json:"target_weight" binding:"required"`
	TargetDate   string  `json:"target_date"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goal := router.Group("/goal")
	{
		goal.GET("", h.Get)
		goal.PUT("", h.Set)
	}
}

// Get returns the user's goal, or a JSON null body when none has been set.
// Absent is a normal state here, not a 404.
func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	goal, err := h.svc.GetGoal(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Set(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
		return
	}

	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	goal, err := h.svc.SetGoal(c.Request.Context(), services.SetGoalInput{
		UserID:       userID,
		TargetWeight: req.TargetWeight,
		TargetDate:   req.TargetDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}
