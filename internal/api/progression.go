package api

import (
	"errors"
	"net/http"
	"strconv"

	"forgefit_backend/internal/service"
	"forgefit_backend/pkg/auth"
	"forgefit_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type progressionRoutes struct {
	ps service.ProgressionServiceI
	us service.UserServiceI
	a  *auth.APIAuth
}

func NewProgressionRoutes(handler *gin.RouterGroup, ps service.ProgressionServiceI, us service.UserServiceI, a *auth.APIAuth) {
	r := &progressionRoutes{ps: ps, us: us, a: a}
	h := handler.Group("/progression")
	h.Use(a.AuthMiddleware())
	{
		h.POST("/:user_id/xp", r.GrantXP)
		h.GET("/:user_id", r.GetProgression)
		h.GET("/:user_id/history", r.GetXPHistory)
	}
}

type GrantXPRequest struct {
	ActionType string `json:"action_type"`
	XPAmount   int    `json:"xp_amount"`
}

func (r *progressionRoutes) GrantXP(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	var req GrantXPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := r.ps.GrantXP(c.Request.Context(), id, req.ActionType, req.XPAmount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrInvalidXPAmount), errors.Is(err, service.ErrInvalidActionType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Error("failed to grant xp", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grant xp"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"xp_gained":    result.XPGained,
		"new_total_xp": result.NewTotalXP,
		"new_level":    result.NewLevel,
		"leveled_up":   result.LeveledUp,
		"level_title":  result.LevelTitle,
	})
}

func (r *progressionRoutes) GetProgression(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	user, info, err := r.us.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get progression", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get progression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":          user.ID,
		"total_xp":         user.TotalXP,
		"level":            info.Level,
		"level_title":      info.Title,
		"progress_xp":      info.ProgressXP,
		"required_xp":      info.RequiredXP,
		"progress_percent": info.ProgressPercent,
		"current_streak":   user.CurrentStreak,
		"longest_streak":   user.LongestStreak,
	})
}

func (r *progressionRoutes) GetXPHistory(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	actions, err := r.ps.GetXPHistory(c.Request.Context(), id, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get xp history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get xp history"})
		return
	}

	out := make([]gin.H, len(actions))
	for i, action := range actions {
		out[i] = gin.H{
			"action_type": action.ActionType,
			"xp_gained":   action.XPGained,
			"created_at":  action.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}
