package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/api/llm"
	"github.com/abhaysingh-22/EcoTerra/internal/cache"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// ErrRecommenderUnavailable 推荐模型调用失败
var ErrRecommenderUnavailable = errors.New("recommender unavailable")

// 推荐来源
const (
	SourceModel   = "model"
	SourceCache   = "cache"
	SourceCurated = "curated"
)

// RecommendInput 推荐请求
type RecommendInput struct {
	TravelMode        string  `json:"travel_mode"`
	Distance          float64 `json:"distance"`
	WeatherPreference string  `json:"weather_preference,omitempty"`
	SeasonPreference  string  `json:"season_preference,omitempty"`
}

// Recommendations 推荐结果
type Recommendations struct {
	Recommendations []models.Destination `json:"recommendations"`
	Source          string               `json:"source"`
}

// RecommendService 环保目的地推荐
type RecommendService struct {
	recommender Recommender
	cache       cache.Cache
	ttl         time.Duration
	curated     []models.Destination
	logger      *zap.Logger
}

// NewRecommendService 创建推荐服务；recommender 为 nil 时只返回精选目的地
func NewRecommendService(recommender Recommender, c cache.Cache, ttl time.Duration, curated []models.Destination, logger *zap.Logger) *RecommendService {
	return &RecommendService{
		recommender: recommender,
		cache:       c,
		ttl:         ttl,
		curated:     curated,
		logger:      logger,
	}
}

// Validate 校验推荐请求
func (in RecommendInput) Validate() error {
	verr := &ValidationError{Message: "Validation failed. Please check your input."}
	if strings.TrimSpace(in.TravelMode) == "" {
		verr.add("travel_mode", "Travel mode is required.")
	}
	if math.IsNaN(in.Distance) || math.IsInf(in.Distance, 0) || in.Distance <= 0 {
		verr.add("distance", "Distance must be a positive number.")
	}
	return verr.orNil()
}

// cacheKey 相同偏好得到相同的 key
func (in RecommendInput) cacheKey() string {
	raw := fmt.Sprintf("%s|%.0f|%s|%s",
		strings.ToLower(strings.TrimSpace(in.TravelMode)),
		in.Distance,
		strings.ToLower(strings.TrimSpace(in.WeatherPreference)),
		strings.ToLower(strings.TrimSpace(in.SeasonPreference)),
	)
	sum := sha256.Sum256([]byte(raw))
	return "recommendations:" + hex.EncodeToString(sum[:8])
}

// Recommend 获取推荐：缓存 → 模型 → 写缓存
// 模型未配置时返回精选目的地；模型调用失败时返回 ErrRecommenderUnavailable
func (s *RecommendService) Recommend(ctx context.Context, in RecommendInput) (*Recommendations, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if s.recommender == nil {
		return &Recommendations{Recommendations: s.curated, Source: SourceCurated}, nil
	}

	key := in.cacheKey()
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, key); err == nil {
			var cached []models.Destination
			if err := json.Unmarshal(b, &cached); err == nil && len(cached) > 0 {
				return &Recommendations{Recommendations: cached, Source: SourceCache}, nil
			}
		} else if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("Recommendation cache read failed", zap.Error(err))
		}
	}

	reply, err := s.recommender.Recommend(ctx, llm.Request{
		TravelMode:        strings.TrimSpace(in.TravelMode),
		DistanceKm:        in.Distance,
		WeatherPreference: strings.TrimSpace(in.WeatherPreference),
		SeasonPreference:  strings.TrimSpace(in.SeasonPreference),
	})
	if err != nil {
		s.logger.Error("Recommender call failed", zap.String("travel_mode", in.TravelMode), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRecommenderUnavailable, err)
	}

	if s.cache != nil {
		if b, err := json.Marshal(reply.Recommendations); err == nil {
			if err := s.cache.Set(ctx, key, b, s.ttl); err != nil {
				s.logger.Warn("Recommendation cache write failed", zap.Error(err))
			}
		}
	}
	return &Recommendations{Recommendations: reply.Recommendations, Source: SourceModel}, nil
}
