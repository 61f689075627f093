package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint writes: a boolean status, a
// human-readable message, and optionally the payload (review lists, the
// logged-in user) or a field→message validation map. Absent data and errors
// are omitted from the body entirely.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeResponse(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

// 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	writeResponse(w, http.StatusOK, true, message, data, nil)
}

// 201 Created, used by review creation only
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	writeResponse(w, http.StatusCreated, true, message, data, nil)
}

// 400 Bad Request, carries the validation error map when there is one
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	writeResponse(w, http.StatusBadRequest, false, message, nil, errors)
}

// 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusUnauthorized, false, message, nil, nil)
}

// 403 Forbidden, for mutations of a review the caller does not own
func ResponseForbidden(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusForbidden, false, message, nil, nil)
}

// 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusNotFound, false, message, nil, nil)
}

// 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	writeResponse(w, http.StatusInternalServerError, false, message, nil, nil)
}
