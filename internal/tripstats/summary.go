// Package tripstats 汇总用户的行程历史
package tripstats

import (
	"math"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

// Summary 行程汇总，按需计算，不持久化
type Summary struct {
	TotalTrips        int                       `json:"total_trips"`
	TotalEmissionsKg  float64                   `json:"total_emissions_kg"`
	TotalDistanceKm   float64                   `json:"total_distance_km"`
	AverageEmissionKg float64                   `json:"average_emission_kg"`
	CarbonSavedKg     float64                   `json:"carbon_saved_kg"`
	ModeCounts        map[emission.Mode]int     `json:"mode_counts"`
	ModeEmissionsKg   map[emission.Mode]float64 `json:"mode_emissions_kg"`
}

// Summarize 汇总行程
//
// 空输入返回全零结果，mode_counts 为空 map；
// 未出现的交通方式不会出现在 mode_counts 中。
func Summarize(trips []models.Trip) Summary {
	s := Summary{
		ModeCounts:      make(map[emission.Mode]int),
		ModeEmissionsKg: make(map[emission.Mode]float64),
	}

	var totalKg, totalKm, savedKg float64
	for _, t := range trips {
		totalKg += t.CarbonKg
		totalKm += t.DistanceKm
		savedKg += CarbonSaved(t)
		s.ModeCounts[t.Mode]++
		s.ModeEmissionsKg[t.Mode] += t.CarbonKg
	}

	s.TotalTrips = len(trips)
	s.TotalEmissionsKg = emission.Round2(totalKg)
	s.TotalDistanceKm = emission.Round2(totalKm)
	s.CarbonSavedKg = emission.Round2(savedKg)
	if s.TotalTrips > 0 {
		s.AverageEmissionKg = emission.Round2(totalKg / float64(s.TotalTrips))
	}
	for mode, kg := range s.ModeEmissionsKg {
		s.ModeEmissionsKg[mode] = emission.Round2(kg)
	}
	return s
}

// CarbonSaved 相比同距离乘飞机减少的排放，不会为负
func CarbonSaved(t models.Trip) float64 {
	passengers := t.Passengers
	if passengers < 1 {
		passengers = 1
	}
	baseline := t.DistanceKm * float64(passengers) * emission.FactorFlight
	return math.Max(0, baseline-t.CarbonKg)
}
