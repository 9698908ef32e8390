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

type userRoutes struct {
	us service.UserServiceI
	a  *auth.APIAuth
}

func NewUserRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *auth.APIAuth) {
	r := &userRoutes{us: us, a: a}
	h := handler.Group("/users")
	h.Use(a.AuthMiddleware())
	{
		h.POST("/", r.RegisterUser)
		h.GET("/:user_id", r.GetUser)
	}
}

type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email"`
	IsPremium bool   `json:"is_premium"`
}

type RegisterUserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func (r *userRoutes) RegisterUser(c *gin.Context) {
	log := logger.Logger()

	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u := &model.User{
		Username:         req.Username,
		Email:            req.Email,
		IsPremium:        req.IsPremium,
		RegistrationDate: time.Now().UTC(),
	}

	err := r.us.RegisterUser(c.Request.Context(), u)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		log.Error("failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, RegisterUserResponse{
		UserID:   u.ID.String(),
		Username: u.Username,
	})
}

func (r *userRoutes) GetUser(c *gin.Context) {
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
			c.JSON(http.StatusNotFound, gin.H{"error": "no user associated with the provided user_id"})
			return
		}
		log.Error("failed to get user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":            user.ID,
		"username":           user.Username,
		"is_premium":         user.IsPremium,
		"total_xp":           user.TotalXP,
		"current_level":      info.Level,
		"level_title":        info.Title,
		"progress_xp":        info.ProgressXP,
		"required_xp":        info.RequiredXP,
		"progress_percent":   info.ProgressPercent,
		"current_streak":     user.CurrentStreak,
		"longest_streak":     user.LongestStreak,
		"last_activity_date": user.LastActivityDate,
		"registration_date":  user.RegistrationDate,
	})
}
