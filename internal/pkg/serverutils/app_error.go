package serverutils

import "github.com/gofiber/fiber/v2"

// AppError is a service-level error carrying the HTTP status it should
// surface as. Services return these; the error middleware renders them.
type AppError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewBadRequest(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusBadRequest, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{StatusCode: fiber.StatusNotFound, Message: message}
}

func NewUnprocessable(message string, err error) *AppError {
	return &AppError{StatusCode: fiber.StatusUnprocessableEntity, Message: message, Err: err}
}

func NewUnavailable(message string, err error) *AppError {
	return &AppError{StatusCode: fiber.StatusServiceUnavailable, Message: message, Err: err}
}

func NewInternal(message string, err error) *AppError {
	return &AppError{StatusCode: fiber.StatusInternalServerError, Message: message, Err: err}
}
