package authapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// apiResponse is the client-facing envelope used across the API.
// It mirrors the shape job-board clients already consume:
// a success flag, a human message OR a list of field messages, and optional data.
type apiResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Errors  []string `json:"errors,omitempty"`
	Data    any      `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, apiResponse{Success: true, Message: message, Data: data})
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{Success: false, Message: message})
}

func writeValidationErrors(w http.ResponseWriter, msgs []string) {
	writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Errors: msgs})
}

// writeInternalError reports a generic failure. Raw error detail never reaches
// the client; callers are expected to log it server-side.
func writeInternalError(w http.ResponseWriter) {
	writeFail(w, http.StatusInternalServerError, "internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	defer func() { _ = r.Body.Close() }()

	body := http.MaxBytesReader(w, r.Body, maxBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// Ensure there is no extra data after the first JSON value.
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after JSON object")
	}
	return nil
}
