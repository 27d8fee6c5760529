package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
	"github.com/schoolie/schoolie-backend/internal/pkg/apperrors"
)

// HandleAPIError translates application errors into the standard error
// response. Sentinels decide the status code; a wrapping CustomError
// contributes its message so callers see what actually went wrong.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrProfileNotFound,
		apperrors.ErrRoleNotFound,
		apperrors.ErrAcademyNotFound,
		apperrors.ErrMemberNotFound,
		apperrors.ErrInvitationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	case apperrors.Is(err, apperrors.ErrPermissionDenied,
		apperrors.ErrInviteeNotStudent,
		apperrors.ErrOwnerRoleRequired):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUsernameAlreadyExists,
		apperrors.ErrProfileAlreadyExists,
		apperrors.ErrRoleAlreadyAssigned,
		apperrors.ErrMemberAlreadyExists,
		apperrors.ErrInvitationPending):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceConflict, messageOf(err, "Conflict"))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf prefers the message carried by a CustomError over the fallback
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
