package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelhub/hostelhub/internal/app/models"
	"github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/db"
	"github.com/hostelhub/hostelhub/internal/events"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

type fakeAllotmentStore struct {
	nextID    int64
	active    map[int64]*models.RoomAllotment // keyed by student ID
	byID      map[int64]*models.RoomAllotment
	createErr error
}

func newFakeAllotmentStore() *fakeAllotmentStore {
	return &fakeAllotmentStore{
		nextID: 1,
		active: make(map[int64]*models.RoomAllotment),
		byID:   make(map[int64]*models.RoomAllotment),
	}
}

func (f *fakeAllotmentStore) CreateActiveTx(ctx context.Context, tx pgx.Tx, studentID, roomID int64) (*models.RoomAllotment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.active[studentID]; ok {
		return nil, apperrors.ErrDuplicateActiveAllotment
	}
	a := &models.RoomAllotment{
		ID:            f.nextID,
		StudentID:     studentID,
		RoomID:        roomID,
		Status:        models.AllotmentStatusActive,
		AllotmentDate: time.Now(),
	}
	f.nextID++
	f.active[studentID] = a
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAllotmentStore) GetByID(ctx context.Context, id int64) (*models.RoomAllotment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrAllotmentNotFound
	}
	return a, nil
}

func (f *fakeAllotmentStore) FindActiveByStudent(ctx context.Context, studentID int64) (*models.RoomAllotment, error) {
	return f.active[studentID], nil
}

func (f *fakeAllotmentStore) ListActiveByRoom(ctx context.Context, roomID int64) ([]*models.RoomAllotment, error) {
	var out []*models.RoomAllotment
	for _, a := range f.active {
		if a.RoomID == roomID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllotmentStore) ListByStudent(ctx context.Context, studentID int64) ([]*models.RoomAllotment, error) {
	var out []*models.RoomAllotment
	for _, a := range f.byID {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAllotmentStore) VacateTx(ctx context.Context, tx pgx.Tx, allotmentID int64) (*models.RoomAllotment, error) {
	a, ok := f.byID[allotmentID]
	if !ok || a.Status != models.AllotmentStatusActive {
		return nil, apperrors.ErrAllotmentNotFound
	}
	now := time.Now()
	a.Status = models.AllotmentStatusVacated
	a.VacatedAt = &now
	delete(f.active, a.StudentID)
	return a, nil
}

func (f *fakeAllotmentStore) BulkVacateRoomTx(ctx context.Context, tx pgx.Tx, roomID int64) (int64, error) {
	var count int64
	for studentID, a := range f.active {
		if a.RoomID == roomID {
			now := time.Now()
			a.Status = models.AllotmentStatusVacated
			a.VacatedAt = &now
			delete(f.active, studentID)
			count++
		}
	}
	return count, nil
}

type fakeRoomStore struct {
	rooms      map[int64]*models.Room
	allotments *fakeAllotmentStore
	recomputed []int64
}

func (f *fakeRoomStore) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeRoomStore) RecomputeStatus(ctx context.Context, q repositories.Querier, roomID int64) (*models.Room, error) {
	room, err := f.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	f.recomputed = append(f.recomputed, roomID)

	occupants := 0
	for _, a := range f.allotments.active {
		if a.RoomID == roomID {
			occupants++
		}
	}
	room.Occupants = occupants
	room.Status = models.DeriveRoomStatus(room.Status, occupants)
	return room, nil
}

type fakeStudentFinder struct {
	students map[int64]*models.Student
}

func (f *fakeStudentFinder) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type recordingSubscriber struct {
	received []events.Event
}

func (r *recordingSubscriber) Name() string { return "recorder" }

func (r *recordingSubscriber) Handle(ctx context.Context, e events.Event) error {
	r.received = append(r.received, e)
	return nil
}

func newTestAllotmentService(t *testing.T) (*AllotmentService, *fakeAllotmentStore, *fakeRoomStore, *recordingSubscriber) {
	t.Helper()

	userID := int64(10)
	students := &fakeStudentFinder{students: map[int64]*models.Student{
		1: {ID: 1, UserID: &userID, Name: "Anjali Menon", RegNo: "TVE21CS044"},
	}}
	allotments := newFakeAllotmentStore()
	rooms := &fakeRoomStore{
		rooms: map[int64]*models.Room{
			12: {ID: 12, HostelID: 1, RoomNo: "A-102", Capacity: 3, Occupants: 1, Status: models.RoomStatusOccupied},
			13: {ID: 13, HostelID: 1, RoomNo: "A-103", Capacity: 2, Status: models.RoomStatusUnderMaintenance},
		},
		allotments: allotments,
	}

	recorder := &recordingSubscriber{}
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(recorder)

	svc := &AllotmentService{
		allotments: allotments,
		rooms:      rooms,
		students:   students,
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return fn(ctx, nil)
		},
	}
	return svc, allotments, rooms, recorder
}

func TestCreateAllotment(t *testing.T) {
	ctx := context.Background()

	t.Run("success recomputes status and emits event", func(t *testing.T) {
		svc, _, rooms, recorder := newTestAllotmentService(t)

		allotment, err := svc.CreateAllotment(ctx, 1, 12)
		require.NoError(t, err)
		assert.Equal(t, models.AllotmentStatusActive, allotment.Status)
		assert.Equal(t, []int64{12}, rooms.recomputed)
		assert.Equal(t, models.RoomStatusOccupied, rooms.rooms[12].Status)

		require.Len(t, recorder.received, 1)
		event := recorder.received[0]
		assert.Equal(t, events.AllotmentCreated, event.Type)
		assert.Equal(t, "A-102", event.Payload["roomNo"])
		assert.Equal(t, int64(10), event.Payload["userId"])
	})

	t.Run("second active allotment is rejected", func(t *testing.T) {
		svc, _, _, recorder := newTestAllotmentService(t)

		_, err := svc.CreateAllotment(ctx, 1, 12)
		require.NoError(t, err)

		_, err = svc.CreateAllotment(ctx, 1, 12)
		assert.ErrorIs(t, err, apperrors.ErrDuplicateActiveAllotment)
		assert.Len(t, recorder.received, 1, "failed attempt must not emit an event")
	})

	t.Run("room under maintenance", func(t *testing.T) {
		svc, _, _, _ := newTestAllotmentService(t)

		_, err := svc.CreateAllotment(ctx, 1, 13)
		assert.ErrorIs(t, err, apperrors.ErrRoomUnderMaintenance)
	})

	t.Run("unknown student", func(t *testing.T) {
		svc, _, _, _ := newTestAllotmentService(t)

		_, err := svc.CreateAllotment(ctx, 99, 12)
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})

	t.Run("full room surfaces the conflict", func(t *testing.T) {
		svc, allotments, rooms, _ := newTestAllotmentService(t)
		allotments.createErr = apperrors.ErrRoomFull

		_, err := svc.CreateAllotment(ctx, 1, 12)
		assert.ErrorIs(t, err, apperrors.ErrRoomFull)
		assert.Empty(t, rooms.recomputed)
	})
}

func TestVacateAllotment(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip frees the student for reallotment", func(t *testing.T) {
		svc, _, rooms, recorder := newTestAllotmentService(t)

		created, err := svc.CreateAllotment(ctx, 1, 12)
		require.NoError(t, err)

		vacated, err := svc.VacateAllotment(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AllotmentStatusVacated, vacated.Status)
		require.NotNil(t, vacated.VacatedAt)
		assert.Equal(t, []int64{12, 12}, rooms.recomputed)
		assert.Equal(t, models.RoomStatusVacant, rooms.rooms[12].Status, "emptied room reverts to Vacant")

		require.Len(t, recorder.received, 2)
		assert.Equal(t, events.AllotmentVacated, recorder.received[1].Type)

		// The student can be allotted again after vacating
		_, err = svc.CreateAllotment(ctx, 1, 12)
		assert.NoError(t, err)
	})

	t.Run("vacating twice fails", func(t *testing.T) {
		svc, _, _, _ := newTestAllotmentService(t)

		created, err := svc.CreateAllotment(ctx, 1, 12)
		require.NoError(t, err)

		_, err = svc.VacateAllotment(ctx, created.ID)
		require.NoError(t, err)

		_, err = svc.VacateAllotment(ctx, created.ID)
		assert.ErrorIs(t, err, apperrors.ErrAllotmentNotFound)
	})
}

func TestBulkVacateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("vacates every occupant and emits one event", func(t *testing.T) {
		svc, allotments, _, recorder := newTestAllotmentService(t)

		_, err := allotments.CreateActiveTx(ctx, nil, 1, 12)
		require.NoError(t, err)
		_, err = allotments.CreateActiveTx(ctx, nil, 2, 12)
		require.NoError(t, err)

		count, err := svc.BulkVacateRoom(ctx, 12)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.Empty(t, allotments.active)

		require.Len(t, recorder.received, 1)
		assert.Equal(t, events.RoomVacatedBulk, recorder.received[0].Type)
		assert.Equal(t, int64(2), recorder.received[0].Payload["count"])
	})

	t.Run("emptied maintenance room keeps its status", func(t *testing.T) {
		svc, allotments, rooms, _ := newTestAllotmentService(t)

		_, err := allotments.CreateActiveTx(ctx, nil, 1, 13)
		require.NoError(t, err)

		count, err := svc.BulkVacateRoom(ctx, 13)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, models.RoomStatusUnderMaintenance, rooms.rooms[13].Status)
	})

	t.Run("empty room emits nothing", func(t *testing.T) {
		svc, _, _, recorder := newTestAllotmentService(t)

		count, err := svc.BulkVacateRoom(ctx, 12)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, recorder.received)
	})
}
