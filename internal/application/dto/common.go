package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code" example:"NOT_FOUND"`
	Message string `json:"message" example:"Employee not found"`
}

// MessageResponse confirmación simple (ej. borrado).
type MessageResponse struct {
	Message string `json:"message" example:"Employee deleted"`
}
