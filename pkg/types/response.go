// Package types holds the wire envelopes shared by every endpoint.
package types

// SuccessEnvelope wraps every 2xx payload under a "data" key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details carries per-field
// validation context when present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps every error payload under an "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
