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
)

type leaderboardRoutes struct {
	ls service.LeaderboardServiceI
	a  *auth.APIAuth
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, ls service.LeaderboardServiceI, a *auth.APIAuth) {
	r := &leaderboardRoutes{ls: ls, a: a}
	h := handler.Group("/leaderboard")
	h.Use(a.AuthMiddleware())
	{
		h.GET("/:metric", r.GetLeaderboard)
	}
}

func (r *leaderboardRoutes) GetLeaderboard(c *gin.Context) {
	log := logger.Logger()

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := r.ls.GetLeaderboard(c.Request.Context(), c.Param("metric"), limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMetric) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "metric must be xp or streak"})
			return
		}
		log.Error("failed to get leaderboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get leaderboard"})
		return
	}

	out := make([]gin.H, len(entries))
	for i, entry := range entries {
		out[i] = gin.H{
			"rank":         entry.Rank,
			"user_id":      entry.UserID,
			"username":     entry.Username,
			"metric_value": entry.MetricValue,
			"level":        entry.Level,
			"is_premium":   entry.IsPremium,
		}
	}

	c.JSON(http.StatusOK, out)
}
