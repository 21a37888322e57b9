package models

import (
	"testing"
	"time"
)

func TestVehicle_NeedsMaintenance(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-30 * 24 * time.Hour)
	old := now.Add(-7 * 30 * 24 * time.Hour)

	tests := []struct {
		name     string
		last     *time.Time
		expected bool
	}{
		{"never serviced", nil, true},
		{"serviced last month", &recent, false},
		{"serviced seven months ago", &old, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Vehicle{LastServiceDate: tt.last}
			if got := v.NeedsMaintenance(now); got != tt.expected {
				t.Errorf("NeedsMaintenance() = %v, want %v", got, tt.expected)
			}
		})
	}
}
