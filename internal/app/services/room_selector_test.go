package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

func TestRoomSelectorSelect(t *testing.T) {
	hostelA := int64(1)
	hostelB := int64(2)

	candidates := []*models.Room{
		{ID: 1, HostelID: hostelA, RoomNo: "A-101", Capacity: 2, Occupants: 2},
		{ID: 2, HostelID: hostelA, RoomNo: "A-102", Capacity: 3, Occupants: 1},
		{ID: 3, HostelID: hostelB, RoomNo: "B-201", Capacity: 2, Occupants: 0},
	}

	selector := NewRoomSelector()

	t.Run("prefers the applicant's hostel", func(t *testing.T) {
		room, err := selector.Select(candidates, &hostelA)
		require.NoError(t, err)
		assert.Equal(t, "A-102", room.RoomNo)
	})

	t.Run("no preference picks the emptiest room overall", func(t *testing.T) {
		room, err := selector.Select(candidates, nil)
		require.NoError(t, err)
		assert.Equal(t, "A-102", room.RoomNo)
	})

	t.Run("unmatched preference widens to all candidates", func(t *testing.T) {
		missing := int64(99)
		room, err := selector.Select(candidates, &missing)
		require.NoError(t, err)
		assert.Equal(t, "A-102", room.RoomNo)
	})

	t.Run("ties break on room number", func(t *testing.T) {
		tied := []*models.Room{
			{ID: 5, HostelID: hostelA, RoomNo: "A-110", Capacity: 3, Occupants: 1},
			{ID: 4, HostelID: hostelA, RoomNo: "A-105", Capacity: 3, Occupants: 1},
		}
		room, err := selector.Select(tied, nil)
		require.NoError(t, err)
		assert.Equal(t, "A-105", room.RoomNo)
	})

	t.Run("empty candidate set", func(t *testing.T) {
		_, err := selector.Select(nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrNoAvailableRooms)
	})

	t.Run("input order is not mutated", func(t *testing.T) {
		_, err := selector.Select(candidates, nil)
		require.NoError(t, err)
		assert.Equal(t, "A-101", candidates[0].RoomNo)
		assert.Equal(t, "A-102", candidates[1].RoomNo)
		assert.Equal(t, "B-201", candidates[2].RoomNo)
	})
}
