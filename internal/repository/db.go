package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("not found")

// notFound 将 pgx.ErrNoRows 转换为 ErrNotFound
func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// DB 数据库连接池封装
type DB struct {
	Pool *pgxpool.Pool
}

// New 创建数据库连接
func New(ctx context.Context, databaseURL string, maxConns int32) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close 关闭连接池
func (db *DB) Close() {
	db.Pool.Close()
}

// Ping 健康检查
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Migrations 按顺序执行的迁移语句
var Migrations = []string{
	migrationCreateProfiles,
	migrationCreateTrips,
	migrationCreateFeedback,
}

// Migrate 执行数据库迁移
func (db *DB) Migrate(ctx context.Context) error {
	for i, m := range Migrations {
		if _, err := db.Pool.Exec(ctx, m); err != nil {
			return fmt.Errorf("execute migration %d: %w", i+1, err)
		}
	}
	return nil
}

const migrationCreateProfiles = `
CREATE TABLE IF NOT EXISTS profiles (
    uid VARCHAR(128) PRIMARY KEY,
    email VARCHAR(255) NOT NULL,
    display_name VARCHAR(255) NOT NULL,
    photo_url TEXT,
    preferences JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

// trips 只追加，不更新不删除
const migrationCreateTrips = `
CREATE TABLE IF NOT EXISTS trips (
    id UUID PRIMARY KEY,
    user_id VARCHAR(128) NOT NULL,
    trip_name VARCHAR(255),
    origin VARCHAR(255),
    destination VARCHAR(255),
    mode VARCHAR(16) NOT NULL,
    vehicle_type VARCHAR(16) NOT NULL DEFAULT '',
    distance_km DOUBLE PRECISION NOT NULL,
    passengers INT NOT NULL DEFAULT 1,
    carbon_kg DOUBLE PRECISION NOT NULL,
    method VARCHAR(64) NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trips_user_id ON trips(user_id);
CREATE INDEX IF NOT EXISTS idx_trips_created_at ON trips(created_at);
`

const migrationCreateFeedback = `
CREATE TABLE IF NOT EXISTS feedback (
    id UUID PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    email VARCHAR(255) NOT NULL,
    message TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`
