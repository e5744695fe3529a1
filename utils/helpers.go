package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
	contentTypeText   = "text/plain; charset=utf-8"
)

// HTTPErrorResponse is the standard error body for the documents API.
type HTTPErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// WriteHTTPError writes a standardized HTTP error response.
func WriteHTTPError(w http.ResponseWriter, code int, message string) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(code)

	response := HTTPErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
		Code:    code,
	}

	data, err := json.Marshal(response)
	if err != nil {
		// Fallback to plain text if JSON marshaling fails
		w.Header().Set(headerContentType, contentTypeText)
		fmt.Fprintf(w, "Error: %s", message)
		return
	}
	w.Write(data)
}

// WriteHTTPJSON writes a JSON response with proper headers.
func WriteHTTPJSON(w http.ResponseWriter, code int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		WriteHTTPError(w, http.StatusInternalServerError, "Failed to encode response")
		return err
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(code)
	w.Write(data)
	return nil
}

// ValidateRequired checks that a required string field is present.
func ValidateRequired(fieldName, value string) error {
	if value == "" {
		return Errorf("required field '%s' cannot be empty", fieldName)
	}
	return nil
}
