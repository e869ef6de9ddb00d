// Package api defines response envelope types shared by all HTTP handlers.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for requests that carry no payload.
type MessageResponse struct {
	Message string `json:"message"`
}
