package tripstats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhaysingh-22/EcoTerra/internal/emission"
	"github.com/abhaysingh-22/EcoTerra/internal/models"
)

func TestSummarize_Empty(t *testing.T) {
	for _, trips := range [][]models.Trip{nil, {}} {
		s := Summarize(trips)

		assert.Equal(t, 0, s.TotalTrips)
		assert.Zero(t, s.TotalEmissionsKg)
		assert.Zero(t, s.TotalDistanceKm)
		assert.Zero(t, s.AverageEmissionKg)
		assert.Zero(t, s.CarbonSavedKg)
		assert.False(t, math.IsNaN(s.AverageEmissionKg))
		require.NotNil(t, s.ModeCounts)
		assert.Empty(t, s.ModeCounts)
	}
}

func TestSummarize_EmptyEncodesEmptyObject(t *testing.T) {
	raw, err := json.Marshal(Summarize(nil))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"mode_counts":{}`)
}

func TestSummarize_Totals(t *testing.T) {
	trips := []models.Trip{
		{Mode: emission.ModeTrain, CarbonKg: 14.2, DistanceKm: 500, Passengers: 1},
		{Mode: emission.ModeFlight, CarbonKg: 127.5, DistanceKm: 500, Passengers: 1},
	}

	s := Summarize(trips)

	assert.Equal(t, 2, s.TotalTrips)
	assert.InDelta(t, 141.7, s.TotalEmissionsKg, 1e-9)
	assert.InDelta(t, 1000.0, s.TotalDistanceKm, 1e-9)
	assert.InDelta(t, 70.85, s.AverageEmissionKg, 1e-9)
	assert.Equal(t, map[emission.Mode]int{emission.ModeTrain: 1, emission.ModeFlight: 1}, s.ModeCounts)
	assert.InDelta(t, 14.2, s.ModeEmissionsKg[emission.ModeTrain], 1e-9)
	assert.InDelta(t, 127.5, s.ModeEmissionsKg[emission.ModeFlight], 1e-9)
}

func TestSummarize_ModeCountsOnlyPresentModes(t *testing.T) {
	trips := []models.Trip{
		{Mode: emission.ModeBus, CarbonKg: 1, DistanceKm: 10},
		{Mode: emission.ModeBus, CarbonKg: 2, DistanceKm: 20},
		{Mode: emission.ModeShip, CarbonKg: 3, DistanceKm: 30},
	}

	s := Summarize(trips)

	assert.Equal(t, 3, s.TotalTrips)
	assert.Equal(t, 2, s.ModeCounts[emission.ModeBus])
	assert.Equal(t, 1, s.ModeCounts[emission.ModeShip])
	assert.NotContains(t, s.ModeCounts, emission.ModeFlight)
	assert.NotContains(t, s.ModeCounts, emission.ModeCar)
	assert.NotContains(t, s.ModeCounts, emission.ModeTrain)
	assert.InDelta(t, 2.0, s.AverageEmissionKg, 1e-9)
}

func TestSummarize_TotalTripsMatchesInput(t *testing.T) {
	var trips []models.Trip
	for i := 0; i < 25; i++ {
		trips = append(trips, models.Trip{Mode: emission.Modes[i%len(emission.Modes)], CarbonKg: float64(i), DistanceKm: 1})
	}
	assert.Equal(t, len(trips), Summarize(trips).TotalTrips)
}

func TestCarbonSaved(t *testing.T) {
	tests := []struct {
		name string
		trip models.Trip
		want float64
	}{
		{
			name: "train instead of flight",
			trip: models.Trip{Mode: emission.ModeTrain, DistanceKm: 1000, Passengers: 1, CarbonKg: 41},
			want: 214, // 255 - 41
		},
		{
			name: "flight saves nothing",
			trip: models.Trip{Mode: emission.ModeFlight, DistanceKm: 1000, Passengers: 1, CarbonKg: 255},
			want: 0,
		},
		{
			name: "never negative",
			trip: models.Trip{Mode: emission.ModeFlight, DistanceKm: 10, Passengers: 1, CarbonKg: 500},
			want: 0,
		},
		{
			name: "passengers scale the baseline",
			trip: models.Trip{Mode: emission.ModeBus, DistanceKm: 100, Passengers: 2, CarbonKg: 17.8},
			want: 33.2, // 100*2*0.255 - 17.8
		},
		{
			name: "missing passengers count as one",
			trip: models.Trip{Mode: emission.ModeTrain, DistanceKm: 100, CarbonKg: 4.1},
			want: 21.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CarbonSaved(tt.trip)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
		})
	}
}

func TestSummarize_CarbonSaved(t *testing.T) {
	trips := []models.Trip{
		{Mode: emission.ModeTrain, DistanceKm: 1000, Passengers: 1, CarbonKg: 41},
		{Mode: emission.ModeFlight, DistanceKm: 1000, Passengers: 1, CarbonKg: 255},
	}
	assert.InDelta(t, 214.0, Summarize(trips).CarbonSavedKg, 1e-9)
}
