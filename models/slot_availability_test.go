package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotAvailabilityUnavailableReason(t *testing.T) {
	tests := []struct {
		name string
		row  SlotAvailability
		want string
	}{
		{
			name: "rezerve edilebilir slotta neden yok",
			row:  SlotAvailability{TotalCapacity: 15, RemainingCapacity: 15, IsAvailable: true},
			want: "",
		},
		{
			name: "manuel kapatma kapasiteden önceliklidir",
			row:  SlotAvailability{TotalCapacity: 15, RemainingCapacity: 15, IsAvailable: true, IsManuallyDisabled: true},
			want: ReasonManuallyDisabled,
		},
		{
			name: "kapasite dolu",
			row:  SlotAvailability{TotalCapacity: 15, RemainingCapacity: 0, IsAvailable: false},
			want: ReasonFullyBooked,
		},
		{
			name: "kapasite varken uygunluk kapalı",
			row:  SlotAvailability{TotalCapacity: 15, RemainingCapacity: 5, IsAvailable: false},
			want: ReasonUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.row.UnavailableReason())
			assert.Equal(t, tt.want == "", tt.row.Bookable())
		})
	}
}
