package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response with the given HTTP status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success writes a success envelope. asString reproduces the endpoints that
// encode the status field as the string "200" instead of a number.
func Success(w http.ResponseWriter, env Envelope, asString bool) {
	if asString {
		env.Status = json.RawMessage(`"200"`)
	} else {
		env.Status = json.RawMessage(`200`)
	}
	JSON(w, http.StatusOK, env)
}

// Failure writes a failure envelope with the given backend status and message.
func Failure(w http.ResponseWriter, status int, message string) {
	raw, _ := json.Marshal(status)
	JSON(w, status, Envelope{Status: json.RawMessage(raw), Message: message})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
