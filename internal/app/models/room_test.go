package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRoomStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   RoomStatus
		occupants int
		want      RoomStatus
	}{
		{"vacant room gains an occupant", RoomStatusVacant, 1, RoomStatusOccupied},
		{"occupied room stays occupied", RoomStatusOccupied, 2, RoomStatusOccupied},
		{"occupied room emptied", RoomStatusOccupied, 0, RoomStatusVacant},
		{"empty vacant room stays vacant", RoomStatusVacant, 0, RoomStatusVacant},
		{"emptied maintenance room keeps the flag", RoomStatusUnderMaintenance, 0, RoomStatusUnderMaintenance},
		{"occupancy overrides the maintenance flag", RoomStatusUnderMaintenance, 1, RoomStatusOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRoomStatus(tt.current, tt.occupants))
		})
	}
}

func TestAvailableSpots(t *testing.T) {
	assert.Equal(t, 2, (&Room{Capacity: 3, Occupants: 1}).AvailableSpots())
	assert.Equal(t, 0, (&Room{Capacity: 2, Occupants: 2}).AvailableSpots())
	assert.Equal(t, 0, (&Room{Capacity: 2, Occupants: 3}).AvailableSpots())
}
