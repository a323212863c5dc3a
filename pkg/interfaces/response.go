package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yair/eventscout/pkg/domain"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondWithDomainError maps catalog and storage failures to a status code.
func respondWithDomainError(w http.ResponseWriter, err error) {
	var validationErr domain.ValidationError
	var storageErr *domain.StorageError

	switch {
	case errors.As(err, &validationErr):
		respondWithError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrEventNotFound), errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrRateLimitExceeded):
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
	case errors.Is(err, domain.ErrExternalAPIFailure):
		respondWithError(w, http.StatusServiceUnavailable, "external service unavailable")
	case errors.As(err, &storageErr):
		respondWithError(w, http.StatusInternalServerError, "storage unavailable")
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
