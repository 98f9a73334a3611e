package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "smart-campus/internal/app"
	"smart-campus/internal/bootstrap"
	"smart-campus/internal/cache"
	"smart-campus/internal/model"
	"smart-campus/internal/platform/rabbitmq"
	"smart-campus/internal/repository"
	"smart-campus/internal/transport/http/handler"
	"smart-campus/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	noticeRepo := repository.NewNoticeRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	feedCache := cache.NewFeedCache(
		app.Redis,
		time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.FeedDirtyTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	messagingService := appsvc.NewMessagingService(messageRepo, activityPublisher)
	noticeService := appsvc.NewNoticeService(noticeRepo, feedCache, activityPublisher)
	activityService := appsvc.NewActivityService(activityRepo)

	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(messagingService)
	noticeHandler := handler.NewNoticeHandler(noticeService)
	analyticsHandler := handler.NewAnalyticsHandler(activityService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authJWT, authHandler.Me)

	chatGroup := v1.Group("/chat")
	chatGroup.Use(authJWT)
	chatGroup.POST("/send", chatHandler.Send)
	chatGroup.GET("", chatHandler.List)

	noticeGroup := v1.Group("/notices")
	noticeGroup.Use(authJWT)
	noticeGroup.GET("", noticeHandler.Feed)
	noticeGroup.POST("", middleware.RequireRoles(model.RoleFaculty, model.RoleAdmin), noticeHandler.Publish)

	analyticsGroup := v1.Group("/analytics")
	analyticsGroup.Use(authJWT, middleware.RequireRoles(model.RoleAdmin))
	analyticsGroup.GET("/activity", analyticsHandler.RecentActivity)

	return router
}
