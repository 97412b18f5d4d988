package response

import (
	"encoding/json"
)

// CORS Headers for API responses
var CORSHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "POST,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// APIResponse is the standard response envelope. Status is true on success;
// on validation failure Errors carries the first error per invalid field.
type APIResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Success creates a success envelope with a confirmation message.
func Success(message string) APIResponse {
	return APIResponse{
		Status:  true,
		Message: message,
	}
}

// SuccessWithData creates a success envelope carrying extra data.
func SuccessWithData(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// Fail creates a failure envelope with a message.
func Fail(message string) APIResponse {
	return APIResponse{
		Status:  false,
		Message: message,
	}
}

// FieldErrors creates a failure envelope with per-field validation errors.
func FieldErrors(errs map[string]string) APIResponse {
	return APIResponse{
		Status: false,
		Errors: errs,
	}
}

// ToJSON converts response to JSON string
func (r APIResponse) ToJSON() (string, error) {
	bytes, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
