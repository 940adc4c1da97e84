package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/hostelhub/hostelhub/internal/app/models"
	appRepos "github.com/hostelhub/hostelhub/internal/app/repositories"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

const (
	defaultAdminEmail    = "admin@hostelhub.app"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData seeds a default super admin account, the allotment window
// setting and a small demo hostel when the database is empty. Individual
// failures are collected so one bad step does not block the rest.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	hostelRepo := appRepos.NewHostelRepository(dbPool)
	roomRepo := appRepos.NewRoomRepository(dbPool)
	settingsRepo := appRepos.NewSettingsRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default super admin --- //
	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			lgr.Error().Err(err).Msg("Error checking for default admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Msg("Creating default super admin user...")
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
			if hashErr != nil {
				lgr.Error().Err(hashErr).Msg("Error hashing default admin password")
				finalErr = errors.Join(finalErr, hashErr)
			} else {
				admin := &appModels.User{
					Email:    defaultAdminEmail,
					Password: string(hashed),
					FullName: "Hostel Administrator",
					RoleType: appModels.RoleSuperAdmin,
					IsActive: true,
				}
				if createErr := userRepo.Create(ctx, admin); createErr != nil &&
					!errors.Is(createErr, apperrors.ErrEmailAlreadyExists) {
					lgr.Error().Err(createErr).Msg("Error creating default admin user")
					finalErr = errors.Join(finalErr, createErr)
				}
			}
		}
	}

	// --- Allotment window setting --- //
	if _, err := settingsRepo.Get(ctx, "allotment_open"); errors.Is(err, apperrors.ErrSettingNotFound) {
		if _, setErr := settingsRepo.Set(ctx, "allotment_open", "true"); setErr != nil {
			lgr.Error().Err(setErr).Msg("Error seeding allotment window setting")
			finalErr = errors.Join(finalErr, setErr)
		}
	} else if err != nil {
		lgr.Error().Err(err).Msg("Error checking allotment window setting")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Demo hostel with rooms, only on a fresh database --- //
	hostelCount, err := hostelRepo.Count(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error counting hostels")
		return errors.Join(finalErr, err)
	}
	if hostelCount > 0 {
		return finalErr
	}

	lgr.Info().Msg("Seeding demo hostel and rooms...")
	demo := &appModels.Hostel{Name: "MH-A", Type: "Mens"}
	if err := hostelRepo.Create(ctx, demo); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo hostel")
		return errors.Join(finalErr, err)
	}

	for i := 1; i <= 5; i++ {
		room := &appModels.Room{
			HostelID: demo.ID,
			RoomNo:   fmt.Sprintf("A-10%d", i),
			Capacity: 3,
			Status:   appModels.RoomStatusVacant,
		}
		if err := roomRepo.Create(ctx, room); err != nil &&
			!errors.Is(err, apperrors.ErrRoomAlreadyExists) {
			lgr.Error().Err(err).Str("roomNo", room.RoomNo).Msg("Error creating demo room")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
