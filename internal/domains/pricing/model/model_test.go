package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/pricing/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRateRule_AppliesTo(t *testing.T) {
	rule := model.RateRule{
		StartDate:      date(2025, time.December, 1),
		EndDate:        date(2025, time.December, 31),
		RateMultiplier: 1.2,
		RoomCategory:   "Deluxe Room",
		Active:         true,
	}

	tests := []struct {
		name     string
		mutate   func(r *model.RateRule)
		night    time.Time
		category string
		want     bool
	}{
		{
			name:     "matching night and category",
			mutate:   func(r *model.RateRule) {},
			night:    date(2025, time.December, 15),
			category: "Deluxe Room",
			want:     true,
		},
		{
			name:     "start date is inclusive",
			mutate:   func(r *model.RateRule) {},
			night:    date(2025, time.December, 1),
			category: "Deluxe Room",
			want:     true,
		},
		{
			name:     "end date is inclusive",
			mutate:   func(r *model.RateRule) {},
			night:    date(2025, time.December, 31),
			category: "Deluxe Room",
			want:     true,
		},
		{
			name:     "night before the window",
			mutate:   func(r *model.RateRule) {},
			night:    date(2025, time.November, 30),
			category: "Deluxe Room",
			want:     false,
		},
		{
			name:     "night after the window",
			mutate:   func(r *model.RateRule) {},
			night:    date(2026, time.January, 1),
			category: "Deluxe Room",
			want:     false,
		},
		{
			name:     "different category",
			mutate:   func(r *model.RateRule) {},
			night:    date(2025, time.December, 15),
			category: "Suite",
			want:     false,
		},
		{
			name: "blank category matches every room",
			mutate: func(r *model.RateRule) {
				r.RoomCategory = ""
			},
			night:    date(2025, time.December, 15),
			category: "Suite",
			want:     true,
		},
		{
			name: "inactive rule never applies",
			mutate: func(r *model.RateRule) {
				r.Active = false
			},
			night:    date(2025, time.December, 15),
			category: "Deluxe Room",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rule
			tt.mutate(&r)

			assert.Equal(t, tt.want, r.AppliesTo(tt.night, tt.category))
		})
	}
}
