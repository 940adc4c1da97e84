package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hostelhub/hostelhub/internal/app/models/dto"
	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
	"github.com/hostelhub/hostelhub/internal/pkg/logger"
)

// Error classes, in match order. Business-rule violations map to 409,
// missing entities to 404, malformed input to 400 and auth failures to
// 401/403. Anything unrecognized is logged and reported as a 500 without
// leaking internals.
var (
	conflictErrors = []error{
		apperrors.ErrConflict,
		apperrors.ErrDuplicateActiveAllotment,
		apperrors.ErrRoomFull,
		apperrors.ErrRoomOccupied,
		apperrors.ErrRoomUnderMaintenance,
		apperrors.ErrNoAvailableRooms,
		apperrors.ErrHostelHasActiveAllotments,
		apperrors.ErrRoomHasActiveAllotments,
		apperrors.ErrStudentHasActiveRoom,
		apperrors.ErrPendingApplication,
		apperrors.ErrApplicationNotPending,
		apperrors.ErrFeeAlreadyPaid,
	}

	alreadyExistsErrors = []error{
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrRegNoAlreadyExists,
		apperrors.ErrRoomAlreadyExists,
	}

	notFoundErrors = []error{
		apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrHostelNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrAllotmentNotFound,
		apperrors.ErrApplicationNotFound,
		apperrors.ErrMaintenanceNotFound,
		apperrors.ErrFeeNotFound,
		apperrors.ErrNotificationNotFound,
		apperrors.ErrSettingNotFound,
	}
)

// HandleAPIError maps application errors to HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, conflictErrors):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, err)
	case matchesAny(err, alreadyExistsErrors):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, err)
	case matchesAny(err, notFoundErrors):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err)
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, err)
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, err)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, err)
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, err)
	case errors.Is(err, apperrors.ErrPermissionDenied), errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, err)
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}

// HandleValidationError reports a request-binding failure as a 400 with the
// binding error text.
func HandleValidationError(c *gin.Context, err error) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	c.JSON(http.StatusBadRequest, dto.APIResponse{Error: detail})
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, err error) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, userMessage(err)),
	})
}

func matchesAny(err error, sentinels []error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// userMessage prefers the wrapped CustomError message when present; sentinel
// errors already carry user-facing text.
func userMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		return custom.Error()
	}
	return err.Error()
}
