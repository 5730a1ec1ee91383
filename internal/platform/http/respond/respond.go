// Package respond writes JSON responses and maps error kinds to HTTP status codes.
package respond

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"finance_tracker/internal/shared/apperr"
)

// ErrorResponse is the body of every failed call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of calls that only acknowledge.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of calls that created a record.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// Created answers 201 with the generated id.
func Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, CreatedResponse{ID: id})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error records err on the context and writes the matching status.
// Internal failures are reported without their cause.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

// BadRequest reports a request that could not be bound.
func BadRequest(c *gin.Context, err error) {
	Error(c, apperr.InvalidArgument("%s", err.Error()))
}

// PathID parses the positive int64 path parameter name.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperr.InvalidArgument("%s must be an integer", name)
	}
	if err := apperr.RequirePositiveID(name, id); err != nil {
		return 0, err
	}
	return id, nil
}
