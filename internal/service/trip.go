package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/budget"
	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
	"github.com/abhaysingh-22/EcoTerra/internal/tripstats"
)

// 分页限制
const (
	DefaultTripLimit = 20
	MaxTripLimit     = 100
)

// Alternative 更低碳的替代方案
type Alternative struct {
	Mode      emission.Mode `json:"mode"`
	CarbonKg  float64       `json:"carbon_kg"`
	SavingsKg float64       `json:"savings_kg"`
}

// EstimateResult 估算结果及展示信息
type EstimateResult struct {
	emission.Estimate
	Equivalency tripstats.Equivalency `json:"equivalency"`
	Alternative *Alternative          `json:"alternative,omitempty"`
}

// TripHistory 行程历史
type TripHistory struct {
	Trips   []models.Trip     `json:"trips"`
	Total   int               `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
	Summary tripstats.Summary `json:"summary"`
}

// SummaryResult 汇总及预算状态
type SummaryResult struct {
	Summary     tripstats.Summary     `json:"summary"`
	Equivalency tripstats.Equivalency `json:"equivalency"`
	Budget      budget.Status         `json:"budget"`
}

// TripService 行程估算与记录
type TripService struct {
	trips    TripStore
	profiles ProfileStore
	budgets  *budget.Manager
	events   Publisher
	logger   *zap.Logger
}

// NewTripService 创建行程服务；events 可以为 nil
func NewTripService(trips TripStore, profiles ProfileStore, budgets *budget.Manager, events Publisher, logger *zap.Logger) *TripService {
	return &TripService{
		trips:    trips,
		profiles: profiles,
		budgets:  budgets,
		events:   events,
		logger:   logger,
	}
}

// Estimate 估算排放，并给出替代方案和直观换算
func (s *TripService) Estimate(in emission.TripInput) (*EstimateResult, error) {
	est, err := emission.Calculate(in)
	if err != nil {
		return nil, err
	}

	result := &EstimateResult{
		Estimate:    est,
		Equivalency: tripstats.Equivalencies(est.CarbonKg),
	}

	if alt, ok := emission.GreenerAlternative(est.Mode); ok {
		altIn := in
		altIn.Mode = alt
		altIn.VehicleType = ""
		if altEst, err := emission.Calculate(altIn); err == nil && altEst.CarbonKg < est.CarbonKg {
			result.Alternative = &Alternative{
				Mode:      alt,
				CarbonKg:  altEst.CarbonKg,
				SavingsKg: emission.Round2(est.CarbonKg - altEst.CarbonKg),
			}
		}
	}
	return result, nil
}

// Save 估算并保存一条行程
func (s *TripService) Save(ctx context.Context, userID string, in emission.TripInput, details models.TripDetails) (*models.Trip, error) {
	est, err := emission.Calculate(in)
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		UserID:      userID,
		TripName:    details.TripName,
		Origin:      details.Origin,
		Destination: details.Destination,
		Mode:        est.Mode,
		VehicleType: est.VehicleType,
		DistanceKm:  est.DistanceKm,
		Passengers:  est.Passengers,
		CarbonKg:    est.CarbonKg,
		Method:      est.Method,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("save trip: %w", err)
	}

	s.logger.Info("Trip saved",
		zap.String("user_id", userID),
		zap.String("trip_id", trip.ID),
		zap.String("mode", string(trip.Mode)),
		zap.Float64("carbon_kg", trip.CarbonKg),
	)
	if s.events != nil {
		s.events.SendToUser(userID, EventTripSaved, trip)
	}

	if _, err := s.Summary(ctx, userID); err != nil {
		s.logger.Warn("Failed to refresh budget status", zap.String("user_id", userID), zap.Error(err))
	}
	return trip, nil
}

// Get 获取用户的一条行程，不属于该用户时返回 ErrNotFound
func (s *TripService) Get(ctx context.Context, userID, id string) (*models.Trip, error) {
	trip, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get trip: %w", err)
	}
	return trip, nil
}

// History 分页获取行程，summary 基于全部行程计算
func (s *TripService) History(ctx context.Context, userID string, limit, offset int) (*TripHistory, error) {
	if limit <= 0 {
		limit = DefaultTripLimit
	}
	if limit > MaxTripLimit {
		limit = MaxTripLimit
	}
	if offset < 0 {
		offset = 0
	}

	page, err := s.trips.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	all, err := s.trips.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list all trips: %w", err)
	}

	return &TripHistory{
		Trips:   page,
		Total:   len(all),
		Limit:   limit,
		Offset:  offset,
		Summary: tripstats.Summarize(all),
	}, nil
}

// Summary 汇总用户行程并刷新预算状态
func (s *TripService) Summary(ctx context.Context, userID string) (*SummaryResult, error) {
	trips, err := s.trips.ListByUser(ctx, userID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	budgetKg, err := s.budgetFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, userID, trips, budgetKg)
}

func (s *TripService) summarize(ctx context.Context, userID string, trips []models.Trip, budgetKg float64) (*SummaryResult, error) {
	summary := tripstats.Summarize(trips)
	status, err := s.budgets.Observe(ctx, userID, summary.TotalEmissionsKg, budgetKg)
	if err != nil {
		return nil, fmt.Errorf("observe budget: %w", err)
	}

	return &SummaryResult{
		Summary:     summary,
		Equivalency: tripstats.Equivalencies(summary.TotalEmissionsKg),
		Budget:      status,
	}, nil
}

// budgetFor 读取用户预算；没有资料时使用默认预算
func (s *TripService) budgetFor(ctx context.Context, userID string) (float64, error) {
	p, err := s.profiles.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return models.DefaultCarbonBudgetKg, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get profile: %w", err)
	}
	return p.Preferences.WithDefaults().CarbonBudgetKg, nil
}
