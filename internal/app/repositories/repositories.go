package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by a pool and a transaction.
// Repository methods that must run inside a caller-held transaction accept a
// Querier so the same SQL serves both paths.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	StudentRepository      *StudentRepository
	HostelRepository       *HostelRepository
	RoomRepository         *RoomRepository
	AllotmentRepository    *AllotmentRepository
	ApplicationRepository  *ApplicationRepository
	MaintenanceRepository  *MaintenanceRepository
	NotificationRepository *NotificationRepository
	FeeRepository          *FeeRepository
	SettingsRepository     *SettingsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		StudentRepository:      NewStudentRepository(db),
		HostelRepository:       NewHostelRepository(db),
		RoomRepository:         NewRoomRepository(db),
		AllotmentRepository:    NewAllotmentRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		MaintenanceRepository:  NewMaintenanceRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		FeeRepository:          NewFeeRepository(db),
		SettingsRepository:     NewSettingsRepository(db),
	}
}
