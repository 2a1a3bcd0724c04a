package repository

import (
	"context"
	"fmt"

	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// ProfileRepository 用户资料仓库
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository 创建资料仓库
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get 获取用户资料，不存在时返回 ErrNotFound
func (r *ProfileRepository) Get(ctx context.Context, uid string) (*models.Profile, error) {
	query := `
		SELECT uid, email, display_name, photo_url, preferences, created_at, updated_at
		FROM profiles WHERE uid = $1
	`
	p := &models.Profile{}
	err := r.db.Pool.QueryRow(ctx, query, uid).Scan(
		&p.UID,
		&p.Email,
		&p.DisplayName,
		&p.PhotoURL,
		&p.Preferences,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound("get profile", err)
	}
	return p, nil
}

// Upsert 创建或覆盖用户资料
func (r *ProfileRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (uid, email, display_name, photo_url, preferences)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = EXCLUDED.display_name,
			photo_url = EXCLUDED.photo_url,
			preferences = EXCLUDED.preferences,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err := r.db.Pool.QueryRow(ctx, query,
		p.UID,
		p.Email,
		p.DisplayName,
		p.PhotoURL,
		p.Preferences,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// Update 部分更新，nil 字段保持原值
func (r *ProfileRepository) Update(ctx context.Context, uid string, u models.ProfileUpdate) (*models.Profile, error) {
	query := `
		UPDATE profiles SET
			display_name = COALESCE($2, display_name),
			photo_url = COALESCE($3, photo_url),
			preferences = COALESCE($4, preferences),
			updated_at = NOW()
		WHERE uid = $1
		RETURNING uid, email, display_name, photo_url, preferences, created_at, updated_at
	`
	p := &models.Profile{}
	err := r.db.Pool.QueryRow(ctx, query, uid, u.DisplayName, u.PhotoURL, u.Preferences).Scan(
		&p.UID,
		&p.Email,
		&p.DisplayName,
		&p.PhotoURL,
		&p.Preferences,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound("update profile", err)
	}
	return p, nil
}
