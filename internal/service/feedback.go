package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// 反馈字段长度下限
const (
	MinFeedbackNameLen    = 2
	MinFeedbackMessageLen = 10
)

// ErrFeedbackUnavailable 反馈保存失败
var ErrFeedbackUnavailable = errors.New("feedback unavailable")

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail 邮箱格式校验
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// FeedbackInput 反馈表单
type FeedbackInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FeedbackService 用户反馈
type FeedbackService struct {
	store    FeedbackStore
	notifier Notifier
	logger   *zap.Logger
}

// NewFeedbackService 创建反馈服务；notifier 可以为 nil
func NewFeedbackService(store FeedbackStore, notifier Notifier, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Validate 校验表单，返回 *ValidationError
func (in FeedbackInput) Validate() error {
	verr := &ValidationError{Message: "Validation failed. Please check your input."}
	if utf8.RuneCountInString(strings.TrimSpace(in.Name)) < MinFeedbackNameLen {
		verr.add("name", "Name must be at least 2 characters.")
	}
	if !IsValidEmail(strings.TrimSpace(in.Email)) {
		verr.add("email", "Please enter a valid email address.")
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Message)) < MinFeedbackMessageLen {
		verr.add("message", "Message must be at least 10 characters.")
	}
	return verr.orNil()
}

// Submit 校验并保存反馈，随后发送通知（通知失败不影响结果）
func (s *FeedbackService) Submit(ctx context.Context, in FeedbackInput) (*models.Feedback, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	f := &models.Feedback{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.store.Create(ctx, f); err != nil {
		s.logger.Error("Failed to save feedback", zap.Error(err))
		return nil, ErrFeedbackUnavailable
	}

	s.logger.Info("Feedback submitted", zap.String("feedback_id", f.ID))
	if s.notifier != nil {
		if err := s.notifier.NotifyFeedback(ctx, *f); err != nil {
			s.logger.Warn("Failed to send feedback notification", zap.String("feedback_id", f.ID), zap.Error(err))
		}
	}
	return f, nil
}
