package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"forgefit_backend/internal/api"
	"forgefit_backend/internal/repository"
	"forgefit_backend/internal/service"
	"forgefit_backend/pkg/auth"
	"forgefit_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database, cfg.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	badgeService := service.NewBadgeService(repo)
	progressionService := service.NewProgressionService(repo, badgeService)
	questService := service.NewQuestService(repo, progressionService, badgeService)
	streakService := service.NewStreakService(repo, progressionService, badgeService)
	userService := service.NewUserService(repo)
	leaderboardService := service.NewLeaderboardService(repo)

	apiAuth := auth.NewAPIAuth(cfg.Auth.APISecret, cfg.Auth.DebugMode)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewUserRoutes(a, userService, apiAuth)
	api.NewProgressionRoutes(a, progressionService, userService, apiAuth)
	api.NewQuestRoutes(a, questService, apiAuth)
	api.NewStreakRoutes(a, streakService, apiAuth)
	api.NewBadgeRoutes(a, badgeService, apiAuth)
	api.NewLeaderboardRoutes(a, leaderboardService, apiAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
