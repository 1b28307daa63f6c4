package types

// MessageResponse is the wire shape for successful relay operations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the wire shape for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
