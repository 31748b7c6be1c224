package handler

import (
	"encoding/json"
	"net/http"

	"lunchline/internal/domain"
	"lunchline/internal/logger"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// respondError maps the error taxonomy onto HTTP statuses: validation
// and business-rule failures are 400, missing entities 404, everything
// else (including transaction infrastructure) a 500 that does not leak
// internal detail beyond the error string.
func respondError(w http.ResponseWriter, lg *logger.Logger, action, fallback string, err error) {
	switch domain.KindOf(err) {
	case domain.KindInvalidInput, domain.KindInsufficientStock, domain.KindMalformedPayload:
		writeMessage(w, http.StatusBadRequest, err.Error())
	case domain.KindNotFound:
		writeMessage(w, http.StatusNotFound, err.Error())
	default:
		lg.Error(action, err, nil)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": fallback,
			"error":   err.Error(),
		})
	}
}
