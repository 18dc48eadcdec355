// internal/interfaces/http/response/response.go
package response

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stephenombuya/Velixa/internal/pkg/apperror"
)

// Body is the envelope of every successful response
type Body struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody is the single error shape returned by every service and the gateway
type ErrorBody struct {
	Status    string    `json:"status"`
	Code      int       `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// OK writes a 200 response
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Body{Message: message, Data: data})
}

// Created writes a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Body{Message: message, Data: data})
}

// Error aborts the request with the error body
func Error(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, newErrorBody(status, message, c.GetString("request_id")))
}

// FromError maps a service error onto its HTTP status.
// Internal errors are attached to the context for the request logger and their message is hidden.
func FromError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, status, apperror.MessageOf(err))
}

// StatusOf returns the HTTP status for a service error
func StatusOf(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the error body to a plain http.ResponseWriter
func WriteError(w http.ResponseWriter, status int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(newErrorBody(status, message, requestID))
}

func newErrorBody(status int, message, requestID string) ErrorBody {
	return ErrorBody{
		Status:    "FAILED",
		Code:      status,
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}
