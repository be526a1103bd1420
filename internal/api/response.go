package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/NgigiN/momo/internal/records"
)

const (
	codeNotFound         = "TRANSACTION_NOT_FOUND"
	codeValidation       = "VALIDATION_ERROR"
	codeMalformed        = "MALFORMED_INPUT"
	codeInvalidID        = "INVALID_ID"
	codeUnauthorized     = "UNAUTHORIZED"
	codeRouteNotFound    = "NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeInternal         = "INTERNAL_ERROR"
)

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(body); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeSuccess(w http.ResponseWriter, data any, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{Error: &errorBody{Code: code, Message: message}})
}

// writeFailure maps a core error onto its HTTP status.
func writeFailure(w http.ResponseWriter, err error) {
	var verr *records.ValidationError
	switch {
	case errors.Is(err, records.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, codeValidation, verr.Error())
	case errors.Is(err, records.ErrMalformedInput):
		writeError(w, http.StatusBadRequest, codeMalformed, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}
