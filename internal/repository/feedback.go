package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// FeedbackRepository 用户反馈仓库
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository 创建反馈仓库
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create 保存反馈
func (r *FeedbackRepository) Create(ctx context.Context, f *models.Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	query := `
		INSERT INTO feedback (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	if err := r.db.Pool.QueryRow(ctx, query, f.ID, f.Name, f.Email, f.Message).Scan(&f.CreatedAt); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}
