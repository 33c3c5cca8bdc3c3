package models

import "github.com/gofiber/fiber/v2"

type ErrorCode string

const (
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeAlreadyExists    ErrorCode = "ALREADY_EXISTS"
	CodeDeadlineExceeded ErrorCode = "DEADLINE_EXCEEDED"
	CodeInternal         ErrorCode = "INTERNAL"
)

// APIError carries the taxonomy code alongside a caller-facing message.
type APIError struct {
	Code    ErrorCode
	Message string
}

func (e APIError) Error() string {
	return e.Message
}

func (e APIError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidArgument:
		return fiber.StatusBadRequest
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeAlreadyExists:
		return fiber.StatusConflict
	case CodeDeadlineExceeded:
		return fiber.StatusRequestTimeout
	}
	return fiber.StatusInternalServerError
}

func NewInvalidArgument(msg string) APIError {
	return APIError{Code: CodeInvalidArgument, Message: msg}
}

func NewNotFound(msg string) APIError {
	return APIError{Code: CodeNotFound, Message: msg}
}

func NewAlreadyExists(msg string) APIError {
	return APIError{Code: CodeAlreadyExists, Message: msg}
}

func NewDeadlineExceeded(msg string) APIError {
	return APIError{Code: CodeDeadlineExceeded, Message: msg}
}

func NewInternal(msg string) APIError {
	return APIError{Code: CodeInternal, Message: msg}
}

// AsAPIError unwraps err into an APIError, defaulting to INTERNAL with a
// generic message so downstream failures are never surfaced verbatim.
func AsAPIError(err error) APIError {
	if apiErr, ok := err.(APIError); ok {
		return apiErr
	}
	return NewInternal("internal error, please try again later")
}
