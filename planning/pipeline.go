package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/models"
	"github.com/flowstate/tractor-beam/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Narrow read/write boundaries the engine depends on. gorm implements
// them in models.PlanningStore; tests use in-memory fakes.

type CatalogReader interface {
	Locations(ctx context.Context) ([]models.Location, error)
	Components(ctx context.Context) ([]models.Component, error)
	Suppliers(ctx context.Context) ([]models.Supplier, error)
	TractorModels(ctx context.Context) ([]models.TractorModel, error)
}

type ForecastReader interface {
	DemandSeries(ctx context.Context, locationId, modelId string) ([]models.ForecastPoint, error)
	QualitySeries(ctx context.Context, supplierId string) ([]models.ForecastPoint, error)
}

type HistoryReader interface {
	HistoricalReports(ctx context.Context, locationId string) ([]models.HistoricalReport, error)
}

type ResultWriter interface {
	SaveStrategies(ctx context.Context, strategies []models.AllocationStrategy) error
	SaveCards(ctx context.Context, cards []models.QuarterlyCard) error
	ClearDerived(ctx context.Context) error
}

// Engine runs the full recommendation pipeline: demand aggregation,
// supplier allocation, impact calculation, prioritization and card
// building, one (location, component) pair at a time. Pairs share only
// immutable reference data, so each unit of work is independent.
type Engine struct {
	Catalog   CatalogReader
	Forecasts ForecastReader
	History   HistoryReader
	Results   ResultWriter
	Trace     TraceCollector
	Logger    *logrus.Logger

	// Planning window; NewEngine defaults these from config.
	HorizonStart time.Time
	Year         int
	Quarters     []int
}

func NewEngine(catalog CatalogReader, forecasts ForecastReader, history HistoryReader, results ResultWriter, logger *logrus.Logger) *Engine {
	trace := TraceCollector(NopCollector{})
	if config.PipelineDebugTrace() {
		trace = LogrusCollector{Logger: logger}
	}
	return &Engine{
		Catalog:      catalog,
		Forecasts:    forecasts,
		History:      history,
		Results:      results,
		Trace:        trace,
		Logger:       logger,
		HorizonStart: config.PlanningHorizonStart(),
		Year:         config.PlanningYear,
		Quarters:     config.PlanningQuarters(),
	}
}

type RunOptions struct {
	// Clear wipes previously generated cards and strategies first.
	Clear bool
	// LocationId restricts the run to one location when non-empty.
	LocationId string
}

type RunSummary struct {
	RunId        string        `json:"run_id"`
	Pairs        int           `json:"pairs"`
	CardsWritten int           `json:"cards_written"`
	Skipped      int           `json:"skipped"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

// Run executes the pipeline to completion. Missing-reference problems
// are fatal only to their (location, component) pair: they are logged
// and the run continues. Storage errors abort the whole run and leave
// previously committed rows untouched.
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*RunSummary, error) {
	started := time.Now()
	runId := uuid.NewString()
	ctx = utils.SetRunIdInContext(ctx, runId)
	log := e.Logger.WithFields(logrus.Fields{"runId": runId})

	locations, err := e.Catalog.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	components, err := e.Catalog.Components(ctx)
	if err != nil {
		return nil, fmt.Errorf("load components: %w", err)
	}
	suppliers, err := e.Catalog.Suppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load suppliers: %w", err)
	}
	tractorModels, err := e.Catalog.TractorModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tractor models: %w", err)
	}

	if opts.Clear {
		if err := e.Results.ClearDerived(ctx); err != nil {
			return nil, fmt.Errorf("clear derived data: %w", err)
		}
		log.Info("cleared previously generated cards and strategies")
	}

	qualityBySupplier, err := e.loadQualitySeries(ctx, suppliers)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{RunId: runId}
	var strategies []models.AllocationStrategy
	var cards []models.QuarterlyCard

	for _, location := range locations {
		if opts.LocationId != "" && location.ID != opts.LocationId {
			continue
		}
		reports, err := e.History.HistoricalReports(ctx, location.ID)
		if err != nil {
			return nil, fmt.Errorf("load historical reports for %s: %w", location.ID, err)
		}
		for _, component := range components {
			summary.Pairs++
			strategy, pairCards, err := e.buildPair(ctx, location, component, suppliers, tractorModels, qualityBySupplier, reports, runId)
			if err != nil {
				if isPairFatal(err) {
					summary.Skipped++
					log.WithFields(logrus.Fields{
						"location":  location.ID,
						"component": component.ID,
					}).Warnf("skipping pair: %v", err)
					continue
				}
				return nil, fmt.Errorf("pair %s/%s: %w", location.ID, component.ID, err)
			}
			strategies = append(strategies, *strategy)
			cards = append(cards, pairCards...)
		}
	}

	if err := e.Results.SaveStrategies(ctx, strategies); err != nil {
		return nil, fmt.Errorf("save strategies: %w", err)
	}
	if err := e.Results.SaveCards(ctx, cards); err != nil {
		return nil, fmt.Errorf("save cards: %w", err)
	}

	summary.CardsWritten = len(cards)
	summary.Elapsed = time.Since(started)
	log.WithFields(logrus.Fields{
		"pairs":   summary.Pairs,
		"cards":   summary.CardsWritten,
		"skipped": summary.Skipped,
		"elapsed": summary.Elapsed.String(),
	}).Info("pipeline run complete")
	return summary, nil
}

// buildPair runs every stage for one (location, component).
func (e *Engine) buildPair(ctx context.Context, location models.Location, component models.Component, suppliers []models.Supplier, tractorModels []models.TractorModel, qualityBySupplier map[string][]models.ForecastPoint, reports []models.HistoricalReport, runId string) (*models.AllocationStrategy, []models.QuarterlyCard, error) {
	pairKey := location.ID + "/" + component.ID

	var consuming []models.TractorModel
	for _, m := range tractorModels {
		if m.UsesComponent(component.ID) {
			consuming = append(consuming, m)
		}
	}
	if len(consuming) == 0 {
		return nil, nil, utils.ErrNoConsumingModels
	}

	seriesByModel := map[string][]models.ForecastPoint{}
	for _, m := range consuming {
		series, err := e.Forecasts.DemandSeries(ctx, location.ID, m.ID)
		if err != nil {
			if errors.Is(err, utils.ErrNoForecast) {
				config.LogWarn(e.Logger, "pipeline", "buildPair", "demand forecast",
					map[string]string{"location": location.ID, "model": m.ID},
					"model has no forecast rows; contributes nothing")
				continue
			}
			return nil, nil, err
		}
		seriesByModel[m.ID] = series
	}
	if len(seriesByModel) == 0 {
		return nil, nil, utils.ErrNoForecast
	}

	avgLeadTime := AverageLeadTime(location, suppliers)
	demand := AggregateDemand(seriesByModel, avgLeadTime, e.HorizonStart, e.Year)
	e.Trace.Stage("demand", pairKey, demand)

	allocations, err := BuildAllocations(component, location, suppliers, qualityBySupplier, demand)
	if err != nil {
		return nil, nil, err
	}
	e.Trace.Stage("allocation", pairKey, allocations)

	current := DeriveCurrentStrategy(component, location, reports, suppliers, e.Quarters)
	impact := ComputeImpact(component, current, demand, allocations, e.Quarters)
	e.Trace.Stage("impact", pairKey, impact)

	recommendation, quantityWhy, allocationWhy, riskWhy := BuildReasoning(component, location, demand, allocations, impact)
	payload := models.StrategyPayload{
		SchemaVersion:    models.StrategySchemaVersion,
		LocationId:       location.ID,
		ComponentId:      component.ID,
		CurrentInventory: current.Inventory,
		Demand:           demand,
		Allocations:      allocations,
		Recommendation:   recommendation,
		QuantityWhy:      quantityWhy,
		AllocationWhy:    allocationWhy,
		RiskWhy:          riskWhy,
	}

	cards, err := BuildCards(payload, impact, e.Quarters, e.Year, runId)
	if err != nil {
		return nil, nil, err
	}
	e.Trace.Stage("cards", pairKey, cards)

	encoded, err := payload.Encode()
	if err != nil {
		return nil, nil, err
	}
	strategy := &models.AllocationStrategy{
		LocationId:  location.ID,
		ComponentId: component.ID,
		RunId:       runId,
		Payload:     encoded,
	}
	return strategy, cards, nil
}

func (e *Engine) loadQualitySeries(ctx context.Context, suppliers []models.Supplier) (map[string][]models.ForecastPoint, error) {
	out := map[string][]models.ForecastPoint{}
	for _, s := range suppliers {
		series, err := e.Forecasts.QualitySeries(ctx, s.ID)
		if err != nil {
			if errors.Is(err, utils.ErrNoForecast) {
				continue
			}
			return nil, fmt.Errorf("load quality series for %s: %w", s.ID, err)
		}
		out[s.ID] = series
	}
	return out, nil
}

func isPairFatal(err error) bool {
	return errors.Is(err, utils.ErrNoConsumingModels) ||
		errors.Is(err, utils.ErrNoEligibleSuppliers) ||
		errors.Is(err, utils.ErrNoForecast)
}
