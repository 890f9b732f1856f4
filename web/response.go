package web

import (
	"github.com/gin-gonic/gin"

	"github.com/imanmaris99/amimum-api/apperrors"
)

// SuccessResponse is the envelope returned by every successful endpoint.
type SuccessResponse struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// ErrorResponse mirrors the failure kind into the body; the HTTP status
// always matches status_code.
type ErrorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// OK writes the success envelope.
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, SuccessResponse{
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// Fail maps an error from the core to the error envelope. Unexpected errors
// come out as INTERNAL with no detail leaked.
func Fail(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	status := kind.HTTPStatus()
	c.JSON(status, ErrorResponse{
		StatusCode: status,
		Error:      string(kind),
		Message:    apperrors.MessageOf(err),
	})
}

// Abort writes the error envelope and stops the handler chain. Middleware
// uses this so rejected requests carry the same shape as handler failures.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
