package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/booking/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBooking_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		status string
		target string
		want   bool
	}{
		{name: "pending to confirmed", status: model.StatusPending, target: model.StatusConfirmed, want: true},
		{name: "pending to cancelled", status: model.StatusPending, target: model.StatusCancelled, want: true},
		{name: "confirmed to cancelled", status: model.StatusConfirmed, target: model.StatusCancelled, want: true},
		{name: "confirmed back to pending", status: model.StatusConfirmed, target: model.StatusPending, want: true},
		{name: "cancelled is terminal", status: model.StatusCancelled, target: model.StatusPending, want: false},
		{name: "cancelled cannot confirm", status: model.StatusCancelled, target: model.StatusConfirmed, want: false},
		{name: "unknown target status", status: model.StatusPending, target: "archived", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := model.Booking{Status: tt.status}

			assert.Equal(t, tt.want, booking.CanTransitionTo(tt.target))
		})
	}
}

func TestBooking_Occupies(t *testing.T) {
	booking := model.Booking{
		Status:   model.StatusConfirmed,
		CheckIn:  date(2025, time.December, 24),
		CheckOut: date(2025, time.December, 26),
	}

	tests := []struct {
		name  string
		night time.Time
		want  bool
	}{
		{name: "check-in night", night: date(2025, time.December, 24), want: true},
		{name: "middle night", night: date(2025, time.December, 25), want: true},
		{name: "check-out day is free", night: date(2025, time.December, 26), want: false},
		{name: "night before check-in", night: date(2025, time.December, 23), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booking.Occupies(tt.night))
		})
	}
}

func TestBooking_Occupies_CancelledNeverBlocks(t *testing.T) {
	booking := model.Booking{
		Status:   model.StatusCancelled,
		CheckIn:  date(2025, time.December, 24),
		CheckOut: date(2025, time.December, 26),
	}

	assert.False(t, booking.Occupies(date(2025, time.December, 24)))
	assert.False(t, booking.Occupies(date(2025, time.December, 25)))
}
