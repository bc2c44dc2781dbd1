package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agripulse/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(handler *handlers.APIHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/state", handler.State)
		api.PUT("/state/farm-type", handler.SwitchFarmType)

		api.GET("/settings/:farmType", handler.GetSettings)
		api.PUT("/settings/:farmType", handler.SaveSettings)

		farms := api.Group("/farms/:farmType")
		{
			farms.GET("/logs", handler.ListLogs)
			farms.POST("/logs", handler.SaveLog)
			farms.GET("/income", handler.Income)
			farms.POST("/income", handler.SaveIncome)
			farms.GET("/dashboard", handler.Dashboard)
		}

		api.GET("/feed", handler.Feed)
		api.POST("/feed/purchases", handler.AddFeedPurchase)
		api.DELETE("/feed/purchases/:id", handler.DeleteFeedPurchase)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
