// Package handlers wires HTTP routes to services: decode, validate input
// shape, call the service, map sentinel errors to status codes.
package handlers

// ErrorResponse is the error body shared by all handlers
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	Error string `json:"error"`
}

// MessageResponse is a plain confirmation body
// swagger:model MessageResponse
type MessageResponse struct {
	// Confirmation message
	Message string `json:"message"`
}

const maxImageSize = 1 << 20 // 1 megabyte, same cap the upload form enforces
