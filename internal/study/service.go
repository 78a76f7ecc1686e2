// Package study orchestrates the recompute and planned-value sync flows:
// load current state through the store, run the pure engines, persist the
// derived output. All calculation lives in feasibility and schedule; this
// layer is plumbing.
package study

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/logger"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/report"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/schedule"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/store"
)

type Service struct {
	storage   *store.Storage
	engine    *feasibility.Engine
	appLogger *logger.Logger
}

func NewService(storage *store.Storage, appLogger *logger.Logger) *Service {
	return &Service{
		storage:   storage,
		engine:    feasibility.New(feasibility.DefaultOptions()),
		appLogger: appLogger,
	}
}

// Recompute loads a study's current inputs, line items, thresholds and
// auxiliary totals, runs the engine and persists the derived result.
// Called after every save of any input or line-item screen.
func (s *Service) Recompute(ctx context.Context, studyID uuid.UUID) (*store.StudyResult, error) {
	const component = "Recompute"

	st, err := s.storage.Studies.GetStudy(ctx, studyID)
	if err != nil {
		return nil, err
	}

	itemRows, err := s.storage.LineItems.ListActive(ctx, studyID)
	if err != nil {
		return nil, err
	}
	items := make([]feasibility.LineItem, 0, len(itemRows))
	for i := range itemRows {
		items = append(items, itemRows[i].Engine())
	}

	thresholds := feasibility.DefaultThresholds()
	settings, err := s.storage.Settings.GetSettings(ctx, st.UserID)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		thresholds = settings.Thresholds()
	}

	aux, err := s.loadAuxTotals(ctx, studyID)
	if err != nil {
		return nil, err
	}

	res := s.engine.Recompute(st.Inputs(), items, thresholds, aux)

	result := store.NewStudyResult(studyID, &res, time.Now())
	if err := s.storage.Studies.SaveResult(ctx, result); err != nil {
		return nil, err
	}

	s.appLogger.Info(component, "Recomputed study %s: viability=%s roi=%s official=%t",
		studyID, res.ViabilityIndicator, res.ROI, res.IsOfficial)
	return result, nil
}

func (s *Service) loadAuxTotals(ctx context.Context, studyID uuid.UUID) (feasibility.AuxTotals, error) {
	var aux feasibility.AuxTotals
	var err error

	if aux.ProviderContracts, err = s.storage.Totals.ProviderContractsPaid(ctx, studyID); err != nil {
		return aux, fmt.Errorf("failed to load provider totals: %w", err)
	}
	if aux.Construction, err = s.storage.Totals.ConstructionTotal(ctx, studyID); err != nil {
		return aux, fmt.Errorf("failed to load construction totals: %w", err)
	}
	if aux.BillsPaid, err = s.storage.Totals.BillsPaid(ctx, studyID); err != nil {
		return aux, fmt.Errorf("failed to load bill totals: %w", err)
	}
	return aux, nil
}

// SyncSchedule regenerates a study's planned-value rows when its stage tree
// changed since the last sync. The dirty check is an optimization: skipping
// it only costs a redundant, idempotent replace. Returns whether a sync ran
// and the rows now persisted.
func (s *Service) SyncSchedule(ctx context.Context, studyID uuid.UUID) (bool, []store.PlannedValue, error) {
	const component = "PVSync"

	stageRows, err := s.storage.Stages.ListActive(ctx, studyID)
	if err != nil {
		return false, nil, err
	}
	stages := make([]schedule.Stage, 0, len(stageRows))
	for i := range stageRows {
		stages = append(stages, stageRows[i].Schedule())
	}

	lastSync, err := s.storage.PlannedValues.GetLastSync(ctx, studyID)
	if err != nil {
		return false, nil, err
	}

	if !schedule.NeedsSync(lastSync, stages) {
		s.appLogger.Debug(component, "Study %s is up to date, skipping sync", studyID)
		return false, nil, nil
	}

	distributed := schedule.DistributeStages(stages)
	rows := make([]store.PlannedValue, 0, len(distributed))
	for _, row := range distributed {
		rows = append(rows, store.PlannedValue{
			StudyID:  studyID,
			StageID:  row.StageID,
			MonthKey: row.MonthKey,
			Value:    row.Value,
		})
	}

	if err := s.storage.PlannedValues.ReplaceForStudy(ctx, studyID, rows, time.Now()); err != nil {
		return false, nil, err
	}

	s.appLogger.Info(component, "Synced planned values for study %s: stages=%d rows=%d",
		studyID, len(stages), len(rows))
	return true, rows, nil
}

// PortfolioSummary aggregates a user's computed results into the portfolio
// overview figures.
func (s *Service) PortfolioSummary(ctx context.Context, userID uuid.UUID) (*report.Summary, error) {
	rows, err := s.storage.Studies.ListPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}

	snapshots := make([]report.StudySnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, report.StudySnapshot{
			Study:     row.Name,
			ROI:       row.ROI.InexactFloat64(),
			Profit:    row.Profit.InexactFloat64(),
			Invested:  row.TotalInvested.InexactFloat64(),
			Viability: row.Viability,
		})
	}

	summary := report.BuildSummary(snapshots)
	return &summary, nil
}
