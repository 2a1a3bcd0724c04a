// Package service 业务逻辑层
//
// 用户身份总是作为显式参数传入；存储、缓存、通知等依赖通过接口注入。
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abhaysingh-22/EcoTerra/internal/api/llm"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
	"github.com/abhaysingh-22/EcoTerra/internal/repository"
)

// ErrValidation 请求参数校验失败
var ErrValidation = errors.New("validation failed")

// ErrNotFound 记录不存在
var ErrNotFound = repository.ErrNotFound

// ValidationError 字段级校验错误
type ValidationError struct {
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(keys, ", "))
}

// Is 使 errors.Is(err, ErrValidation) 成立
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// TripStore 行程存储
type TripStore interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, userID, id string) (*models.Trip, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Trip, error)
}

// ProfileStore 用户资料存储
type ProfileStore interface {
	Get(ctx context.Context, uid string) (*models.Profile, error)
	Upsert(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, uid string, u models.ProfileUpdate) (*models.Profile, error)
}

// FeedbackStore 反馈存储
type FeedbackStore interface {
	Create(ctx context.Context, f *models.Feedback) error
}

// Notifier 反馈通知
type Notifier interface {
	NotifyFeedback(ctx context.Context, f models.Feedback) error
}

// Recommender 目的地推荐模型
type Recommender interface {
	Recommend(ctx context.Context, req llm.Request) (*llm.Reply, error)
}

// Publisher 向某个用户的实时连接推送消息
type Publisher interface {
	SendToUser(userID, msgType string, data interface{})
}

// 推送消息类型
const (
	EventTripSaved     = "trip_saved"
	EventBudgetChanged = "budget_changed"
)
