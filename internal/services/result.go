package services

import "net/http"

// Result is the uniform envelope every service operation returns. Handlers
// read Success/ErrorMessage to decide between the success JSON payload and a
// re-rendered form fragment; StatusCode distinguishes validation failures
// (400), missing rows (404) and conflicts (409) without the handler having to
// parse messages.
type Result[T any] struct {
	Success      bool   `json:"success"`
	Data         T      `json:"data,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	StatusCode   int    `json:"status_code"`
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data, StatusCode: http.StatusOK}
}

func Created[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data, StatusCode: http.StatusCreated}
}

func Fail[T any](message string) Result[T] {
	return Result[T]{ErrorMessage: message, StatusCode: http.StatusBadRequest}
}

func Conflict[T any](message string) Result[T] {
	return Result[T]{ErrorMessage: message, StatusCode: http.StatusConflict}
}

func NotFound[T any](message string) Result[T] {
	return Result[T]{ErrorMessage: message, StatusCode: http.StatusNotFound}
}

// ServerError is returned for any unexpected repository failure; the raw
// error is logged by the service and never reaches the caller.
func ServerError[T any](message string) Result[T] {
	return Result[T]{ErrorMessage: message, StatusCode: http.StatusInternalServerError}
}

// IsNotFound reports whether the result represents a missing row.
func (r Result[T]) IsNotFound() bool {
	return !r.Success && r.StatusCode == http.StatusNotFound
}
