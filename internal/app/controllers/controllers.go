package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/schoolie/schoolie-backend/internal/app/models/dto"
)

// currentUserID returns the authenticated user id placed on the context by
// the JWT middleware. A missing id means the route was wired without the
// middleware; the request is rejected rather than served anonymously.
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return "", false
	}
	return userID, true
}

// bindJSON binds the request body and reports a uniform validation error
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body").WithDetails(err.Error())))
		return false
	}
	return true
}
