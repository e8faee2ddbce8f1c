package models

import (
	"context"
	"errors"

	"github.com/flowstate/tractor-beam/config"
	"github.com/flowstate/tractor-beam/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlanningStore is the gorm-backed implementation of the narrow reader/
// writer interfaces the planning engine depends on. Tests use in-memory
// fakes instead; nothing in the pipeline touches gorm directly.
type PlanningStore struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewPlanningStore(db *gorm.DB, logger *logrus.Logger) *PlanningStore {
	return &PlanningStore{db: db, logger: logger}
}

func (s *PlanningStore) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := s.db.WithContext(ctx).Order("id").Find(&locations).Error
	return locations, err
}

func (s *PlanningStore) Components(ctx context.Context) ([]Component, error) {
	var components []Component
	err := s.db.WithContext(ctx).Order("id").Find(&components).Error
	return components, err
}

func (s *PlanningStore) Suppliers(ctx context.Context) ([]Supplier, error) {
	var suppliers []Supplier
	err := s.db.WithContext(ctx).Order("id").Find(&suppliers).Error
	return suppliers, err
}

func (s *PlanningStore) TractorModels(ctx context.Context) ([]TractorModel, error) {
	var tractorModels []TractorModel
	err := s.db.WithContext(ctx).Order("id").Find(&tractorModels).Error
	return tractorModels, err
}

// DemandSeries returns the decoded forecast series for one
// (location, model). A missing row is utils.ErrNoForecast; a malformed
// stored blob degrades to an empty series and is logged, per-record.
func (s *PlanningStore) DemandSeries(ctx context.Context, locationId, modelId string) ([]ForecastPoint, error) {
	var forecast DemandForecast
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND model_id = ?", locationId, modelId).
		First(&forecast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNoForecast
		}
		return nil, err
	}
	pts, decodeErr := DecodeForecastSeries(forecast.Series)
	if decodeErr != nil {
		config.LogError(s.logger, "planningStore", "DemandSeries", "decode",
			s.logData(ctx, map[string]string{"location": locationId, "model": modelId}), decodeErr)
		return nil, nil
	}
	return pts, nil
}

func (s *PlanningStore) QualitySeries(ctx context.Context, supplierId string) ([]ForecastPoint, error) {
	var forecast QualityForecast
	err := s.db.WithContext(ctx).
		Where("supplier_id = ?", supplierId).
		First(&forecast).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNoForecast
		}
		return nil, err
	}
	pts, decodeErr := DecodeForecastSeries(forecast.Series)
	if decodeErr != nil {
		config.LogError(s.logger, "planningStore", "QualitySeries", "decode",
			s.logData(ctx, map[string]string{"supplier": supplierId}), decodeErr)
		return nil, nil
	}
	return pts, nil
}

func (s *PlanningStore) HistoricalReports(ctx context.Context, locationId string) ([]HistoricalReport, error) {
	var reports []HistoricalReport
	err := s.db.WithContext(ctx).
		Where("location_id = ?", locationId).
		Order("report_date").
		Find(&reports).Error
	return reports, err
}

// SaveStrategies upserts on the (location, component) key so reruns
// without --clear replace rather than duplicate.
func (s *PlanningStore) SaveStrategies(ctx context.Context, strategies []AllocationStrategy) error {
	if len(strategies) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "location_id"}, {Name: "component_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"run_id", "payload", "updated_at"}),
		}).
		CreateInBatches(strategies, 50).Error
}

// SaveCards upserts on the (location, component, quarter, year) key.
// Inserts are order-independent; a batch failure aborts the run.
func (s *PlanningStore) SaveCards(ctx context.Context, cards []QuarterlyCard) error {
	if len(cards) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "location_id"}, {Name: "component_id"},
				{Name: "quarter"}, {Name: "year"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_units", "current_cost", "recommended_units", "recommended_cost",
				"unit_delta", "cost_delta", "urgency", "impact_level", "priority",
				"opportunity_score", "strategy", "run_id",
			}),
		}).
		CreateInBatches(cards, 50).Error
}

// logData tags log fields with the active pipeline run id when present.
func (s *PlanningStore) logData(ctx context.Context, data map[string]string) map[string]string {
	if runId, ok := utils.GetRunIdFromContext(ctx); ok {
		data["runId"] = runId
	}
	return data
}

// ClearDerived wipes all pipeline output (cards and strategies) while
// leaving reference data and history untouched.
func (s *PlanningStore) ClearDerived(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&QuarterlyCard{}).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&AllocationStrategy{}).Error
}
