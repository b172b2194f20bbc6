package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shine/internal/domains/booking/model"
	"shine/shared/constant"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{
			name: "pending to confirmed",
			from: constant.BookingStatusPending,
			to:   constant.BookingStatusConfirmed,
			want: true,
		},
		{
			name: "pending to cancelled",
			from: constant.BookingStatusPending,
			to:   constant.BookingStatusCancelled,
			want: true,
		},
		{
			name: "pending to completed",
			from: constant.BookingStatusPending,
			to:   constant.BookingStatusCompleted,
			want: false,
		},
		{
			name: "confirmed to completed",
			from: constant.BookingStatusConfirmed,
			to:   constant.BookingStatusCompleted,
			want: true,
		},
		{
			name: "confirmed to cancelled",
			from: constant.BookingStatusConfirmed,
			to:   constant.BookingStatusCancelled,
			want: true,
		},
		{
			name: "confirmed back to pending",
			from: constant.BookingStatusConfirmed,
			to:   constant.BookingStatusPending,
			want: false,
		},
		{
			name: "completed is terminal",
			from: constant.BookingStatusCompleted,
			to:   constant.BookingStatusConfirmed,
			want: false,
		},
		{
			name: "cancelled is terminal",
			from: constant.BookingStatusCancelled,
			to:   constant.BookingStatusPending,
			want: false,
		},
		{
			name: "same status is not a transition",
			from: constant.BookingStatusPending,
			to:   constant.BookingStatusPending,
			want: false,
		},
		{
			name: "unknown status",
			from: "unknown",
			to:   constant.BookingStatusConfirmed,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}
