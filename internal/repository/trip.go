package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// TripRepository 行程记录仓库
type TripRepository struct {
	db *DB
}

// NewTripRepository 创建行程仓库
func NewTripRepository(db *DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, user_id, trip_name, origin, destination, mode, vehicle_type,
	distance_km, passengers, carbon_kg, method, created_at`

// Create 保存行程，ID 和时间戳由仓库生成
func (r *TripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}

	query := `
		INSERT INTO trips (id, user_id, trip_name, origin, destination, mode, vehicle_type,
			distance_km, passengers, carbon_kg, method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := r.db.Pool.QueryRow(ctx, query,
		trip.ID,
		trip.UserID,
		trip.TripName,
		trip.Origin,
		trip.Destination,
		string(trip.Mode),
		string(trip.VehicleType),
		trip.DistanceKm,
		trip.Passengers,
		trip.CarbonKg,
		trip.Method,
	).Scan(&trip.Timestamp)

	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}
	return nil
}

// GetByID 获取用户的某条行程
func (r *TripRepository) GetByID(ctx context.Context, userID, id string) (*models.Trip, error) {
	// id 列为 UUID，格式不对的 id 不可能存在
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get trip by id: %w", ErrNotFound)
	}

	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1 AND user_id = $2`

	trip, err := scanTrip(r.db.Pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, notFound("get trip by id", err)
	}
	return trip, nil
}

// ListByUser 获取用户行程（按时间倒序），limit <= 0 表示全部
func (r *TripRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trips: %w", err)
	}
	return trips, nil
}

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var (
		trip    models.Trip
		mode    string
		vehicle string
	)
	err := row.Scan(
		&trip.ID,
		&trip.UserID,
		&trip.TripName,
		&trip.Origin,
		&trip.Destination,
		&mode,
		&vehicle,
		&trip.DistanceKm,
		&trip.Passengers,
		&trip.CarbonKg,
		&trip.Method,
		&trip.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	trip.Mode = emission.Mode(mode)
	trip.VehicleType = emission.VehicleType(vehicle)
	return &trip, nil
}
