package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Error codes used across the API, mirroring the handler-level taxonomy:
// user-correctable input problems, missing records, the RSVP conflict,
// opaque store failures, and media-host failures.
const (
	CodeValidationError  = "validation_error"
	CodeNotFound         = "not_found"
	CodeDuplicateRSVP    = "duplicate_rsvp"
	CodePersistenceError = "persistence_error"
	CodeUpstreamError    = "upstream_error"
	CodeUnauthorized     = "unauthorized"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
