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

type fakeHostelStore struct {
	hostels       map[int64]*models.Hostel
	active        int64
	cascadeCalled bool
}

func (f *fakeHostelStore) Create(ctx context.Context, hostel *models.Hostel) error {
	hostel.ID = int64(len(f.hostels) + 1)
	f.hostels[hostel.ID] = hostel
	return nil
}

func (f *fakeHostelStore) GetByID(ctx context.Context, id int64) (*models.Hostel, error) {
	hostel, ok := f.hostels[id]
	if !ok {
		return nil, apperrors.ErrHostelNotFound
	}
	return hostel, nil
}

func (f *fakeHostelStore) GetAll(ctx context.Context) ([]*models.Hostel, error) {
	var out []*models.Hostel
	for _, h := range f.hostels {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHostelStore) Update(ctx context.Context, hostel *models.Hostel) error {
	if _, ok := f.hostels[hostel.ID]; !ok {
		return apperrors.ErrHostelNotFound
	}
	f.hostels[hostel.ID] = hostel
	return nil
}

func (f *fakeHostelStore) CountActiveAllotments(ctx context.Context, q repositories.Querier, hostelID int64) (int64, error) {
	return f.active, nil
}

func (f *fakeHostelStore) DeleteCascadeTx(ctx context.Context, tx pgx.Tx, hostelID int64) error {
	f.cascadeCalled = true
	delete(f.hostels, hostelID)
	return nil
}

type fakeRoomLister struct {
	rooms map[int64][]*models.Room // keyed by hostel ID
}

func (f *fakeRoomLister) GetByHostel(ctx context.Context, hostelID int64) ([]*models.Room, error) {
	return f.rooms[hostelID], nil
}

type fakeUserFinder struct {
	users map[int64]*models.User
}

func (f *fakeUserFinder) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func newTestHostelService(t *testing.T) (*HostelService, *fakeHostelStore, *recordingSubscriber) {
	t.Helper()

	hostels := &fakeHostelStore{hostels: map[int64]*models.Hostel{
		1: {ID: 1, Name: "MH-A", Type: "Mens"},
	}}

	recorder := &recordingSubscriber{}
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(recorder)

	svc := &HostelService{
		hostels: hostels,
		rooms:   &fakeRoomLister{rooms: map[int64][]*models.Room{
			1: {{ID: 12, HostelID: 1, RoomNo: "A-102", Capacity: 3}},
		}},
		users: &fakeUserFinder{users: map[int64]*models.User{
			5: {ID: 5, Email: "warden@hostelhub.app", RoleType: models.RoleWarden},
			6: {ID: 6, Email: "student@hostelhub.app", RoleType: models.RoleStudent},
		}},
		dispatcher: dispatcher,
		runTx: func(ctx context.Context, fn db.TransactionFn) error {
			return fn(ctx, nil)
		},
	}
	return svc, hostels, recorder
}

func TestCreateHostel(t *testing.T) {
	ctx := context.Background()

	t.Run("warden assignment requires the WARDEN role", func(t *testing.T) {
		svc, _, _ := newTestHostelService(t)

		studentID := int64(6)
		err := svc.CreateHostel(ctx, &models.Hostel{Name: "MH-B", Type: "Mens", WardenID: &studentID})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		wardenID := int64(5)
		err = svc.CreateHostel(ctx, &models.Hostel{Name: "MH-B", Type: "Mens", WardenID: &wardenID})
		assert.NoError(t, err)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc, _, _ := newTestHostelService(t)

		err := svc.CreateHostel(ctx, &models.Hostel{Name: "   ", Type: "Mens"})
		assert.Error(t, err)
	})
}

func TestDeleteHostel(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected while any room has an active allotment", func(t *testing.T) {
		svc, hostels, recorder := newTestHostelService(t)
		hostels.active = 2

		err := svc.DeleteHostel(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrHostelHasActiveAllotments)
		assert.False(t, hostels.cascadeCalled, "cascade must not start for an occupied hostel")
		assert.Contains(t, hostels.hostels, int64(1))
		assert.Empty(t, recorder.received)
	})

	t.Run("empty hostel is deleted and the event emitted", func(t *testing.T) {
		svc, hostels, recorder := newTestHostelService(t)

		err := svc.DeleteHostel(ctx, 1)
		require.NoError(t, err)
		assert.True(t, hostels.cascadeCalled)
		assert.NotContains(t, hostels.hostels, int64(1))

		require.Len(t, recorder.received, 1)
		assert.Equal(t, events.HostelDeleted, recorder.received[0].Type)
		assert.Equal(t, int64(1), recorder.received[0].Payload["hostelId"])
	})

	t.Run("unknown hostel", func(t *testing.T) {
		svc, hostels, _ := newTestHostelService(t)

		err := svc.DeleteHostel(ctx, 99)
		assert.ErrorIs(t, err, apperrors.ErrHostelNotFound)
		assert.False(t, hostels.cascadeCalled)
	})
}
