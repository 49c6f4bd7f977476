package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitpulse/backend/pkg/model"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// badRequest writes a VALIDATION_ERROR response.
func badRequest(c *gin.Context, message string, err error) {
	resp := ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
	if err != nil {
		resp.Details = stringPtr(err.Error())
	}
	c.JSON(http.StatusBadRequest, resp)
}

// internalError writes an INTERNAL_ERROR response.
func internalError(c *gin.Context, message string, err error) {
	resp := ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: message,
	}
	if err != nil {
		resp.Details = stringPtr(err.Error())
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// notFound writes a NOT_FOUND response.
func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Code:    "NOT_FOUND",
		Message: message,
	})
}

// dateQuery reads the optional date query parameter, defaulting to today.
// It returns an empty string and writes the error response when the value
// does not parse.
func dateQuery(c *gin.Context) string {
	date := c.Query("date")
	if date == "" {
		return time.Now().Format(model.DateLayout)
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		badRequest(c, "Invalid date, expected YYYY-MM-DD", err)
		return ""
	}
	return date
}
