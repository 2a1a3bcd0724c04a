package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abhaysingh-22/EcoTerra/internal/budget"
	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
	"github.com/abhaysingh-22/EcoTerra/internal/tripstats"
)

// ProfileInput 创建/覆盖资料的请求
type ProfileInput struct {
	Email       string              `json:"email"`
	DisplayName string              `json:"display_name"`
	PhotoURL    *string             `json:"photo_url,omitempty"`
	Preferences *models.Preferences `json:"preferences,omitempty"`
}

// Overview 用户主页数据
type Overview struct {
	Profile     *models.Profile       `json:"profile"`
	Summary     tripstats.Summary     `json:"summary"`
	Equivalency tripstats.Equivalency `json:"equivalency"`
	Budget      budget.Status         `json:"budget"`
	RecentTrips []models.Trip         `json:"recent_trips"`
}

const overviewRecentTrips = 5

// ProfileService 用户资料
type ProfileService struct {
	profiles ProfileStore
	trips    *TripService
	logger   *zap.Logger
}

// NewProfileService 创建资料服务
func NewProfileService(profiles ProfileStore, trips *TripService, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		trips:    trips,
		logger:   logger,
	}
}

// Get 获取资料
func (s *ProfileService) Get(ctx context.Context, uid string) (*models.Profile, error) {
	p, err := s.profiles.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	p.Preferences = p.Preferences.WithDefaults()
	return p, nil
}

// Upsert 创建或覆盖资料，未填写的偏好使用默认值
func (s *ProfileService) Upsert(ctx context.Context, uid string, in ProfileInput) (*models.Profile, error) {
	verr := &ValidationError{Message: "Validation failed. Please check your input."}
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.DisplayName)
	if email == "" {
		verr.add("email", "Email is required.")
	} else if !IsValidEmail(email) {
		verr.add("email", "Please enter a valid email address.")
	}
	if name == "" {
		verr.add("display_name", "Display name is required.")
	}
	var prefs models.Preferences
	if in.Preferences != nil {
		prefs = *in.Preferences
		validatePreferences(verr, prefs)
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	p := &models.Profile{
		UID:         uid,
		Email:       email,
		DisplayName: name,
		PhotoURL:    in.PhotoURL,
		Preferences: prefs.WithDefaults(),
	}
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.refreshBudget(ctx, uid)
	return p, nil
}

// Update 部分更新资料
func (s *ProfileService) Update(ctx context.Context, uid string, u models.ProfileUpdate) (*models.Profile, error) {
	verr := &ValidationError{Message: "Validation failed. Please check your input."}
	if u.DisplayName != nil {
		name := strings.TrimSpace(*u.DisplayName)
		if name == "" {
			verr.add("display_name", "Display name cannot be empty.")
		}
		u.DisplayName = &name
	}
	if u.Preferences != nil {
		validatePreferences(verr, *u.Preferences)
		prefs := u.Preferences.WithDefaults()
		u.Preferences = &prefs
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	p, err := s.profiles.Update(ctx, uid, u)
	if err != nil {
		return nil, err
	}
	p.Preferences = p.Preferences.WithDefaults()

	if u.Preferences != nil {
		s.refreshBudget(ctx, uid)
	}
	return p, nil
}

// Overview 并发加载资料和行程，组装主页数据
func (s *ProfileService) Overview(ctx context.Context, uid string) (*Overview, error) {
	var (
		profile *models.Profile
		trips   []models.Trip
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.Get(gctx, uid)
		if err != nil {
			return fmt.Errorf("load profile: %w", err)
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		t, err := s.trips.trips.ListByUser(gctx, uid, 0, 0)
		if err != nil {
			return fmt.Errorf("load trips: %w", err)
		}
		trips = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := s.trips.summarize(ctx, uid, trips, profile.Preferences.CarbonBudgetKg)
	if err != nil {
		return nil, err
	}

	recent := trips
	if len(recent) > overviewRecentTrips {
		recent = recent[:overviewRecentTrips]
	}
	return &Overview{
		Profile:     profile,
		Summary:     result.Summary,
		Equivalency: result.Equivalency,
		Budget:      result.Budget,
		RecentTrips: recent,
	}, nil
}

// refreshBudget 预算变化后重新计算状态，失败只记录日志
func (s *ProfileService) refreshBudget(ctx context.Context, uid string) {
	if _, err := s.trips.Summary(ctx, uid); err != nil {
		s.logger.Warn("Failed to refresh budget status", zap.String("user_id", uid), zap.Error(err))
	}
}

func validatePreferences(verr *ValidationError, p models.Preferences) {
	if p.CarbonBudgetKg < 0 {
		verr.add("preferences.carbon_budget_kg", "Carbon budget cannot be negative.")
	}
	if p.PreferredTransport != "" {
		if _, ok := emission.ParseMode(p.PreferredTransport); !ok {
			verr.add("preferences.preferred_transport", "Unknown transport mode.")
		}
	}
}
