package transport

import (
	"errors"
	"net/http"

	"hallever/internal/middleware"
	"hallever/internal/repository"
	"hallever/internal/service"

	"go.uber.org/zap"
)

// envelope is the success body every endpoint returns.
type envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// respondData wraps payload in the success envelope.
func respondData(w http.ResponseWriter, statusCode int, payload interface{}) {
	middleware.RespondWithJSON(w, statusCode, envelope{Status: "success", Data: payload})
}

// respondServiceError maps service errors to status codes. fallback is the
// message used for unclassified errors.
func respondServiceError(logger *zap.Logger, w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, service.ErrEmptyOrder):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		middleware.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		middleware.RespondWithError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error(fallback, zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, fallback)
	}
}

// respondDecodeError distinguishes validation failures from malformed JSON.
func respondDecodeError(w http.ResponseWriter, err error) {
	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}
