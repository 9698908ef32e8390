package api

import (
	"errors"
	"net/http"

	"forgefit_backend/internal/service"
	"forgefit_backend/pkg/auth"
	"forgefit_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type streakRoutes struct {
	ss service.StreakServiceI
	a  *auth.APIAuth
}

func NewStreakRoutes(handler *gin.RouterGroup, ss service.StreakServiceI, a *auth.APIAuth) {
	r := &streakRoutes{ss: ss, a: a}
	h := handler.Group("/streaks")
	h.Use(a.AuthMiddleware())
	{
		h.POST("/:user_id/activity", r.RegisterActivity)
	}
}

func (r *streakRoutes) RegisterActivity(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	result, err := r.ss.RegisterActivity(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to register activity", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"already_logged": result.AlreadyLogged,
		"current_streak": result.CurrentStreak,
		"longest_streak": result.LongestStreak,
		"xp_awarded":     result.XPAwarded,
	})
}
