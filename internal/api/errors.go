package api

import (
	"errors"
	"net/http"

	"datamesh/internal/domain"
	"datamesh/internal/service/catalog"
)

// httpStatusFromDomainError maps domain errors to HTTP status codes.
func httpStatusFromDomainError(err error) int {
	var validation *domain.ValidationError
	var conflict *domain.ConflictError
	var notFound *domain.NotFoundError
	var invalidRef *domain.InvalidReferenceError
	var capacity *domain.CapacityError

	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalidRef):
		return http.StatusBadRequest
	case errors.As(err, &capacity):
		return http.StatusTooManyRequests
	case errors.Is(err, catalog.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError renders a domain error as the standard failure envelope.
// Unknown errors are logged and hidden behind a generic 500 message.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error", "error", err)
		message = "Internal server error"
	}
	writeError(w, status, message)
}
