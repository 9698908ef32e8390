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

type badgeRoutes struct {
	bs service.BadgeServiceI
	a  *auth.APIAuth
}

func NewBadgeRoutes(handler *gin.RouterGroup, bs service.BadgeServiceI, a *auth.APIAuth) {
	r := &badgeRoutes{bs: bs, a: a}
	h := handler.Group("/badges")
	h.Use(a.AuthMiddleware())
	{
		h.GET("/:user_id", r.ListBadges)
		h.POST("/:user_id/:badge_id", r.AwardBadge)
	}
}

func (r *badgeRoutes) ListBadges(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	badges, totalUnlocked, err := r.bs.ListBadges(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to list badges", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list badges"})
		return
	}

	out := make([]gin.H, len(badges))
	for i, badge := range badges {
		out[i] = gin.H{
			"badge_id":    badge.BadgeID,
			"name":        badge.Name,
			"tier":        badge.Tier,
			"description": badge.Description,
			"unlocked":    badge.Unlocked,
			"unlocked_at": badge.UnlockedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"badges":         out,
		"total_unlocked": totalUnlocked,
		"total_badges":   len(badges),
	})
}

func (r *badgeRoutes) AwardBadge(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	badge, err := r.bs.AwardBadge(c.Request.Context(), id, c.Param("badge_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownBadge):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown badge id"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			log.Error("failed to award badge", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award badge"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"badge": gin.H{
			"badge_id":    badge.BadgeID,
			"name":        badge.Name,
			"tier":        badge.Tier,
			"description": badge.Description,
		},
	})
}
