package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"solvency-engine/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes into a buffer first so a failed encode never leaves a
// half-written 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		log.Error().Err(err).Msg("Error encoding response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("Error writing response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps scoring errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidRecord),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeJSONBody enforces the content type and size limit, then decodes.
// It writes the error response itself and reports whether decoding worked.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	// A misspelt field would otherwise score as zero.
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Debug().Err(err).Msg("Error decoding request body")
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
