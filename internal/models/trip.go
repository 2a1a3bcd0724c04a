package models

import (
	"time"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
)

// Trip 已保存的行程估算记录，创建后不再修改
type Trip struct {
	ID          string               `json:"id" db:"id"`
	UserID      string               `json:"user_id" db:"user_id"`
	TripName    *string              `json:"trip_name,omitempty" db:"trip_name"`
	Origin      *string              `json:"origin,omitempty" db:"origin"`
	Destination *string              `json:"destination,omitempty" db:"destination"`
	Mode        emission.Mode        `json:"mode" db:"mode"`
	VehicleType emission.VehicleType `json:"vehicle_type,omitempty" db:"vehicle_type"`
	DistanceKm  float64              `json:"distance_km" db:"distance_km"`
	Passengers  int                  `json:"passengers" db:"passengers"`
	CarbonKg    float64              `json:"carbon_kg" db:"carbon_kg"`
	Method      string               `json:"method" db:"method"`
	Timestamp   time.Time            `json:"timestamp" db:"created_at"`
}

// TripDetails 行程的展示信息，不参与计算
type TripDetails struct {
	TripName    *string `json:"trip_name,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
}
