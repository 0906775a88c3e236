package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialnet/social"
)

// statusFor maps a service error to an HTTP status code.
func statusFor(err error) int {
	switch social.ErrKind(err) {
	case social.KindValidation, social.KindInvalidInput:
		return http.StatusBadRequest
	case social.KindNotFound:
		return http.StatusNotFound
	case social.KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error as a JSON response with the mapped status.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}
