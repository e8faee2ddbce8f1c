package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/models/reports"
	"github.com/flowstate/tractor-beam/planning"
	"github.com/flowstate/tractor-beam/utils"
)

const pipelineLockKey = "lock:pipeline-run"

func getCardsHandler(c *gin.Context) {
	cards, err := models.ListCards(c.Request.Context())
	if err != nil {
		serverError(c, "getCardsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func exportCardsHandler(c *gin.Context) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="recommendations.xlsx"`)
	if err := reports.WriteCardsWorkbook(c.Request.Context(), c.Writer); err != nil {
		serverError(c, "exportCardsHandler", err)
	}
}

func getStrategiesHandler(c *gin.Context) {
	strategies, err := models.ListAllocationStrategies(c.Request.Context())
	if err != nil {
		serverError(c, "getStrategiesHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}

type forecastQuery struct {
	Location string `form:"location" binding:"required"`
	Model    string `form:"model"`
}

// getForecastHandler returns one (location, model) forecast, or every
// forecast for the location when model is omitted.
func getForecastHandler(c *gin.Context) {
	var query forecastQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}

	if query.Model == "" {
		forecasts, err := models.ListDemandForecastsByLocation(c.Request.Context(), query.Location)
		if err != nil {
			serverError(c, "getForecastHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"forecasts": forecasts})
		return
	}

	forecast, err := models.GetDemandForecast(c.Request.Context(), query.Location, query.Model)
	if err != nil {
		if err == utils.ErrNoForecast {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		serverError(c, "getForecastHandler", err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

func getLocationsHandler(c *gin.Context) {
	locations, err := models.ListLocations(c.Request.Context())
	if err != nil {
		serverError(c, "getLocationsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func getComponentsHandler(c *gin.Context) {
	components, err := models.ListComponents(c.Request.Context())
	if err != nil {
		serverError(c, "getComponentsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"components": components})
}

func getSuppliersHandler(c *gin.Context) {
	suppliers, err := models.ListSuppliers(c.Request.Context())
	if err != nil {
		serverError(c, "getSuppliersHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

func getTractorModelsHandler(c *gin.Context) {
	tractorModels, err := models.ListTractorModels(c.Request.Context())
	if err != nil {
		serverError(c, "getTractorModelsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": tractorModels})
}

func getHistoricalReportsHandler(c *gin.Context) {
	locationId := c.Query("location")
	if locationId == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location is required"})
		return
	}
	if _, err := models.GetLocation(c.Request.Context(), locationId); err != nil {
		if err == utils.ErrorRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown location"})
			return
		}
		serverError(c, "getHistoricalReportsHandler", err)
		return
	}
	historicalReports, err := models.ListHistoricalReportsByLocation(c.Request.Context(), locationId)
	if err != nil {
		serverError(c, "getHistoricalReportsHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": historicalReports})
}

func getPrioritySummaryHandler(c *gin.Context) {
	summary, err := reports.GetPrioritySummaryReport(c.Request.Context())
	if err != nil {
		serverError(c, "getPrioritySummaryHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func getTopOpportunitiesHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	top, err := reports.GetTopOpportunitiesReport(c.Request.Context(), limit)
	if err != nil {
		serverError(c, "getTopOpportunitiesHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": top})
}

type runPipelineRequest struct {
	Clear    bool   `json:"clear"`
	Location string `json:"location"`
}

// runPipelineHandler triggers a full regeneration. A redis lock keeps
// two runs from interleaving card writes; when redis is absent the
// guard degrades to none, matching the single-instance dev setup.
func runPipelineHandler(c *gin.Context) {
	var req runPipelineRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, pipelineLockKey, 10*time.Minute, nil)
		if err == redislock.ErrNotObtained {
			c.JSON(http.StatusConflict, gin.H{"error": "a pipeline run is already in progress"})
			return
		}
		if err == nil {
			defer lock.Release(ctx)
		}
	}

	logger := config.GetLogger()
	spanCtx, span := tracer.Start(ctx, "pipeline.run")
	defer span.End()

	store := models.NewPlanningStore(config.GetDB(), logger)
	engine := planning.NewEngine(store, store, store, store, logger)
	summary, err := engine.Run(spanCtx, planning.RunOptions{Clear: req.Clear, LocationId: req.Location})
	if err != nil {
		serverError(c, "runPipelineHandler", err)
		return
	}
	reports.InvalidateReportCache()

	c.JSON(http.StatusOK, gin.H{
		"run_id":  summary.RunId,
		"pairs":   summary.Pairs,
		"cards":   summary.CardsWritten,
		"skipped": summary.Skipped,
		"elapsed": summary.Elapsed.String(),
	})
}

func serverError(c *gin.Context, funcName string, err error) {
	var data map[string]string
	if correlationId, ok := utils.GetCorrelationIdFromContext(c.Request.Context()); ok {
		data = map[string]string{"correlationId": correlationId}
	}
	config.LogError(config.GetLogger(), "handlers.go", funcName, "request", data, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
