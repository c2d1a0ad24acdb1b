package dto

// Response is the standard API envelope. Error carries a human-readable
// message and is present only on failures.
type Response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse() Response {
	return Response{Success: true}
}

// NewErrorResponse creates an error response
func NewErrorResponse(message string) Response {
	return Response{
		Success: false,
		Error:   message,
	}
}
