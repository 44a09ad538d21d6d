// Package errors defines the error body returned by the HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ApiError is serialized as the body of every non-2xx response.
type ApiError struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (e *ApiError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func New(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}

func (e *ApiError) WithDetail(detail string) *ApiError {
	c := *e
	c.Detail = detail
	return &c
}

func (e *ApiError) WithRequestID(id string) *ApiError {
	c := *e
	c.RequestID = id
	return &c
}

func BadRequest(message string) *ApiError { return New(http.StatusBadRequest, message) }

func TooLarge(message string) *ApiError { return New(http.StatusRequestEntityTooLarge, message) }

func Internal(message string) *ApiError { return New(http.StatusInternalServerError, message) }
