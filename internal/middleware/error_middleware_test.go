package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hostelhub/hostelhub/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)
	return recorder
}

func TestHandleAPIError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"duplicate allotment", apperrors.ErrDuplicateActiveAllotment, http.StatusConflict},
		{"room full", apperrors.ErrRoomFull, http.StatusConflict},
		{"room under maintenance", apperrors.ErrRoomUnderMaintenance, http.StatusConflict},
		{"fee already paid", apperrors.ErrFeeAlreadyPaid, http.StatusConflict},
		{"email taken", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"student missing", apperrors.ErrStudentNotFound, http.StatusNotFound},
		{"room missing", apperrors.ErrRoomNotFound, http.StatusNotFound},
		{"setting missing", apperrors.ErrSettingNotFound, http.StatusNotFound},
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := handleError(t, tc.err)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewConflictError("Applicant has no student profile")
	recorder := handleError(t, wrapped)
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Applicant has no student profile")
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	recorder := handleError(t, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection refused")
	assert.Contains(t, recorder.Body.String(), "Internal server error")
}
