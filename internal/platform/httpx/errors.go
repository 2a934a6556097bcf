// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors for the console workflows.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptySelection = errors.New("no rows selected")
	ErrGatewayFailure = errors.New("gateway request failed")
)

// RespondError maps workflow errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInvalidInput):
		Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, ErrEmptySelection):
		Problem(w, http.StatusUnprocessableEntity, "Empty Selection", err.Error())
	case errors.Is(err, ErrGatewayFailure):
		Problem(w, http.StatusBadGateway, "Gateway Failure", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
