package api

import (
	"errors"
	"net/http"
	"time"

	"forgefit_backend/internal/model"
	"forgefit_backend/internal/service"
	"forgefit_backend/pkg/auth"
	"forgefit_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type questRoutes struct {
	qs service.QuestServiceI
	a  *auth.APIAuth
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI, a *auth.APIAuth) {
	r := &questRoutes{qs: qs, a: a}
	h := handler.Group("/quests")
	h.Use(a.AuthMiddleware())
	{
		h.GET("/:user_id", r.GetQuests)
		h.POST("/:user_id/:quest_id/complete", r.CompleteQuest)
		h.POST("/:user_id/progress", r.IncrementProgress)
	}
}

type questResponse struct {
	QuestID      string     `json:"quest_id"`
	Kind         string     `json:"kind"`
	QuestType    string     `json:"quest_type"`
	Description  string     `json:"description"`
	Period       string     `json:"period"`
	CurrentValue int        `json:"current_value"`
	TargetValue  *int       `json:"target_value,omitempty"`
	XPReward     int        `json:"xp_reward"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

func toQuestResponse(q *model.Quest) questResponse {
	return questResponse{
		QuestID:      q.ID.String(),
		Kind:         string(q.Kind),
		QuestType:    q.QuestType,
		Description:  q.Description,
		Period:       q.Period.Format("2006-01-02"),
		CurrentValue: q.CurrentValue,
		TargetValue:  q.TargetValue,
		XPReward:     q.XPReward,
		IsCompleted:  q.IsCompleted,
		CompletedAt:  q.CompletedAt,
	}
}

func (r *questRoutes) GetQuests(c *gin.Context) {
	log := logger.Logger()

	id, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	daily, weekly, err := r.qs.GetQuests(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error("failed to get quests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get quests"})
		return
	}

	dailyOut := make([]questResponse, len(daily))
	for i, q := range daily {
		dailyOut[i] = toQuestResponse(q)
	}
	weeklyOut := make([]questResponse, len(weekly))
	for i, q := range weekly {
		weeklyOut[i] = toQuestResponse(q)
	}

	c.JSON(http.StatusOK, gin.H{
		"daily_quests":  dailyOut,
		"weekly_quests": weeklyOut,
	})
}

type CompleteQuestRequest struct {
	Kind string `json:"kind" binding:"required"`
}

func (r *questRoutes) CompleteQuest(c *gin.Context) {
	log := logger.Logger()

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	questID, err := uuid.Parse(c.Param("quest_id"))
	if err != nil {
		log.Error("failed to parse quest_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return
	}

	var req CompleteQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	kind := model.QuestKind(req.Kind)
	if kind != model.QuestKindDaily && kind != model.QuestKindWeekly {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be daily or weekly"})
		return
	}

	result, err := r.qs.CompleteQuest(c.Request.Context(), userID, questID, kind)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrQuestAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "quest already completed"})
		case errors.Is(err, service.ErrQuestTargetNotReached):
			c.JSON(http.StatusBadRequest, gin.H{"error": "quest target not reached"})
		default:
			log.Error("failed to complete quest", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete quest"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quest":       toQuestResponse(result.Quest),
		"xp_awarded":  result.XPAwarded,
		"leveled_up":  result.LeveledUp,
		"new_level":   result.NewLevel,
		"level_title": result.LevelTitle,
	})
}

type IncrementProgressRequest struct {
	QuestType string `json:"quest_type" binding:"required"`
	Delta     int    `json:"delta"`
}

func (r *questRoutes) IncrementProgress(c *gin.Context) {
	log := logger.Logger()

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		log.Error("failed to parse user_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	var req IncrementProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err = r.qs.IncrementProgress(c.Request.Context(), userID, req.QuestType, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no open quest for type"})
		case errors.Is(err, service.ErrInvalidProgressDelta):
			c.JSON(http.StatusBadRequest, gin.H{"error": "delta must be positive"})
		default:
			log.Error("failed to increment quest progress", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to increment quest progress"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
