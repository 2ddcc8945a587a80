// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every API response carries a "success" flag. Failures always look like:
//
//	{ "success": false, "message": "registration not found" }
//
// and successes carry either a message, a data payload, or both.
package response

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope for every JSON reply.
//
// Data is omitted only when it is nil, so an empty list still encodes as
// "data": [].
type Response struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	Data           any    `json:"data,omitempty"`
	RegistrationID int64  `json:"registrationId,omitempty"`
}

// Messages shared by more than one handler.
const (
	MsgNotFound     = "registration not found"
	MsgPageNotFound = "page not found"
	MsgInternal     = "internal server error"
	MsgInvalidBody  = "invalid request body"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK wraps a data payload in a success envelope.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Message is a success envelope that only carries text.
func Message(msg string) Response {
	return Response{Success: true, Message: msg}
}

// Error is the failure envelope. msg is shown to the client, so it must
// never carry database details.
func Error(msg string) Response {
	return Response{Success: false, Message: msg}
}

// NotFound writes the routing 404 used for any unmatched path or method.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusNotFound, Error(MsgPageNotFound))
}
