package server

import (
	"net/http"

	"github.com/teranos/hiero/errors"
	"github.com/teranos/hiero/translit"
)

// statusFor maps error sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, translit.ErrInvalidInputKind), errors.IsInvalidRequestError(err):
		return http.StatusBadRequest
	case errors.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}
