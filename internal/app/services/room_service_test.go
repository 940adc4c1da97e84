package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

type fakeRoomRepo struct {
	rooms         map[int64]*models.Room
	active        int64
	cascadeCalled bool
	statusSet     []models.RoomStatus
	recomputed    []int64
	available     []*models.Room
	availableType *string
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *models.Room) error {
	room.ID = int64(len(f.rooms) + 100)
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRoomRepo) GetByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error) {
	var out []*models.Room
	for _, r := range f.rooms {
		if r.HostelID == hostelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRoomRepo) FindAvailable(ctx context.Context, hostelType *string) ([]*models.Room, error) {
	f.availableType = hostelType
	return f.available, nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, room *models.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return apperrors.ErrRoomNotFound
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) SetStatus(ctx context.Context, q repositories.Querier, roomID int64, status models.RoomStatus) error {
	room, ok := f.rooms[roomID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	room.Status = status
	f.statusSet = append(f.statusSet, status)
	return nil
}

func (f *fakeRoomRepo) RecomputeStatus(ctx context.Context, q repositories.Querier, roomID int64) (*models.Room, error) {
	room, ok := f.rooms[roomID]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	f.recomputed = append(f.recomputed, roomID)
	room.Status = models.DeriveRoomStatus(room.Status, room.Occupants)
	return room, nil
}

func (f *fakeRoomRepo) CountActiveAllotments(ctx context.Context, q repositories.Querier, roomID int64) (int64, error) {
	return f.active, nil
}

func (f *fakeRoomRepo) DeleteCascadeTx(ctx context.Context, tx pgx.Tx, roomID int64) error {
	f.cascadeCalled = true
	delete(f.rooms, roomID)
	return nil
}

func newTestRoomService(t *testing.T) (*RoomService, *fakeRoomRepo, *recordingSubscriber) {
	t.Helper()

	rooms := &fakeRoomRepo{rooms: map[int64]*models.Room{
		12: {ID: 12, HostelID: 1, RoomNo: "A-102", Capacity: 3, Occupants: 1, Status: models.RoomStatusOccupied},
		14: {ID: 14, HostelID: 1, RoomNo: "A-104", Capacity: 2, Status: models.RoomStatusVacant},
	}}
	hostels := &fakeHostelStore{hostels: map[int64]*models.Hostel{
		1: {ID: 1, Name: "MH-A", Type: "Mens"},
	}}

	recorder := &recordingSubscriber{}
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(recorder)

	svc := &RoomService{
		rooms:      rooms,
		hostels:    hostels,
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return fn(ctx, nil)
		},
	}
	return svc, rooms, recorder
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("new room starts vacant", func(t *testing.T) {
		svc, _, _ := newTestRoomService(t)

		room := &models.Room{HostelID: 1, RoomNo: "A-105", Capacity: 3}
		require.NoError(t, svc.CreateRoom(ctx, room))
		assert.Equal(t, models.RoomStatusVacant, room.Status)
	})

	t.Run("unknown hostel", func(t *testing.T) {
		svc, _, _ := newTestRoomService(t)

		err := svc.CreateRoom(ctx, &models.Room{HostelID: 99, RoomNo: "Z-1", Capacity: 2})
		assert.ErrorIs(t, err, apperrors.ErrHostelNotFound)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		svc, _, _ := newTestRoomService(t)

		err := svc.CreateRoom(ctx, &models.Room{HostelID: 1, RoomNo: "A-106", Capacity: 0})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestUpdateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("capacity cannot drop below occupancy", func(t *testing.T) {
		svc, rooms, _ := newTestRoomService(t)
		rooms.rooms[12].Occupants = 3

		err := svc.UpdateRoom(ctx, &models.Room{ID: 12, RoomNo: "A-102", Capacity: 2})
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestListAvailableRooms(t *testing.T) {
	ctx := context.Background()

	svc, rooms, _ := newTestRoomService(t)
	rooms.available = []*models.Room{rooms.rooms[14]}

	mens := "Mens"
	got, err := svc.ListAvailableRooms(ctx, &mens)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	require.NotNil(t, rooms.availableType)
	assert.Equal(t, "Mens", *rooms.availableType)

	_, err = svc.ListAvailableRooms(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, rooms.availableType)
}

func TestSetMaintenanceStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("occupied room cannot enter maintenance", func(t *testing.T) {
		svc, rooms, _ := newTestRoomService(t)

		_, err := svc.SetMaintenanceStatus(ctx, 12, true)
		assert.ErrorIs(t, err, apperrors.ErrRoomOccupied)
		assert.Empty(t, rooms.statusSet)
	})

	t.Run("empty room enters and leaves maintenance", func(t *testing.T) {
		svc, rooms, _ := newTestRoomService(t)

		room, err := svc.SetMaintenanceStatus(ctx, 14, true)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusUnderMaintenance, room.Status)

		room, err = svc.SetMaintenanceStatus(ctx, 14, false)
		require.NoError(t, err)
		assert.Equal(t, models.RoomStatusVacant, room.Status)
		assert.Equal(t, []int64{14}, rooms.recomputed)
	})
}

func TestDeleteRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected while the room has active allotments", func(t *testing.T) {
		svc, rooms, recorder := newTestRoomService(t)
		rooms.active = 1

		err := svc.DeleteRoom(ctx, 12)
		assert.ErrorIs(t, err, apperrors.ErrRoomHasActiveAllotments)
		assert.False(t, rooms.cascadeCalled, "cascade must not start for an occupied room")
		assert.Contains(t, rooms.rooms, int64(12))
		assert.Empty(t, recorder.received)
	})

	t.Run("empty room is deleted and the event emitted", func(t *testing.T) {
		svc, rooms, recorder := newTestRoomService(t)

		err := svc.DeleteRoom(ctx, 14)
		require.NoError(t, err)
		assert.True(t, rooms.cascadeCalled)
		assert.NotContains(t, rooms.rooms, int64(14))

		require.Len(t, recorder.received, 1)
		assert.Equal(t, events.RoomDeleted, recorder.received[0].Type)
		assert.Equal(t, int64(14), recorder.received[0].Payload["roomId"])
	})

	t.Run("unknown room", func(t *testing.T) {
		svc, rooms, _ := newTestRoomService(t)

		err := svc.DeleteRoom(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
		assert.False(t, rooms.cascadeCalled)
	})
}
