package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferences_WithDefaults(t *testing.T) {
	tests := []struct {
		name       string
		in         Preferences
		wantBudget float64
		wantMode   string
	}{
		{"empty", Preferences{}, DefaultCarbonBudgetKg, DefaultPreferredTransport},
		{"zero budget means unset", Preferences{CarbonBudgetKg: 0, PreferredTransport: "bus"}, DefaultCarbonBudgetKg, "bus"},
		{"explicit budget kept", Preferences{CarbonBudgetKg: 250}, 250, DefaultPreferredTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithDefaults()
			assert.InDelta(t, tt.wantBudget, got.CarbonBudgetKg, 1e-9)
			assert.Equal(t, tt.wantMode, got.PreferredTransport)
			assert.NotNil(t, got.SustainabilityGoals)
			assert.Greater(t, got.CarbonBudgetKg, 0.0)
		})
	}
}

func TestPreferences_ScanMissingBudget(t *testing.T) {
	var p Preferences
	require.NoError(t, p.Scan([]byte(`{"preferred_transport":"train"}`)))
	assert.Zero(t, p.CarbonBudgetKg)
	assert.InDelta(t, DefaultCarbonBudgetKg, p.WithDefaults().CarbonBudgetKg, 1e-9)
}
