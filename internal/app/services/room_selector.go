package services

import (
	"sort"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

// RoomSelector deterministically picks one room from a candidate set for
// auto-allocation. It is shared by application approval and the dedicated
// allocate endpoint so both choose identically.
type RoomSelector struct{}

// NewRoomSelector creates a selector
func NewRoomSelector() *RoomSelector {
	return &RoomSelector{}
}

// Select chooses the room with the most spare capacity, preferring the
// applicant's hostel when it has any candidate. A preference no candidate
// matches widens the search instead of failing. Ties are broken by room
// number so repeated calls over the same candidates agree.
func (s *RoomSelector) Select(candidates []*models.Room, preferredHostelID *int64) (*models.Room, error) {
	pool := candidates
	if preferredHostelID != nil {
		var preferred []*models.Room
		for _, room := range candidates {
			if room.HostelID == *preferredHostelID {
				preferred = append(preferred, room)
			}
		}
		if len(preferred) > 0 {
			pool = preferred
		}
	}

	if len(pool) == 0 {
		return nil, apperrors.ErrNoAvailableRooms
	}

	ranked := make([]*models.Room, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].AvailableSpots() != ranked[j].AvailableSpots() {
			return ranked[i].AvailableSpots() > ranked[j].AvailableSpots()
		}
		return ranked[i].RoomNo < ranked[j].RoomNo
	})

	return ranked[0], nil
}
