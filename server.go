package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
)

const defaultPort = "8080"

var tracer = otel.Tracer("tractor-beam")

func main() {
	logger := config.GetLogger()

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	if err := models.MigrateAll(config.GetDB()); err != nil {
		config.LogError(logger, "server.go", "main", "MigrateAll", nil, err)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(correlationMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins(),
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthzHandler)

	api := router.Group("/api")
	{
		api.GET("/cards", getCardsHandler)
		api.GET("/cards/export", exportCardsHandler)
		api.GET("/strategies", getStrategiesHandler)
		api.GET("/forecasts", getForecastHandler)
		api.GET("/locations", getLocationsHandler)
		api.GET("/components", getComponentsHandler)
		api.GET("/suppliers", getSuppliersHandler)
		api.GET("/models", getTractorModelsHandler)
		api.GET("/historical-reports", getHistoricalReportsHandler)
		api.GET("/reports/priority-summary", getPrioritySummaryHandler)
		api.GET("/reports/top-opportunities", getTopOpportunitiesHandler)
		api.POST("/pipeline/run", runPipelineHandler)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.WithFields(logrus.Fields{"port": port}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.LogError(logger, "server.go", "main", "ListenAndServe", nil, err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.LogError(logger, "server.go", "main", "Shutdown", nil, err)
	}
}

func corsOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return []string{origins}
	}
	return []string{"http://localhost:3000"}
}

// correlationMiddleware stamps every request with a correlation id so
// logs from one request (or one triggered pipeline run) tie together.
func correlationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationId := c.GetHeader("X-Correlation-Id")
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		ctx := utils.SetCorrelationIdInContext(c.Request.Context(), correlationId)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-Id", correlationId)
		c.Next()
	}
}

func healthzHandler(c *gin.Context) {
	cache := "disabled"
	if config.GetRedisDB() != nil {
		cache = "enabled"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cache})
}
