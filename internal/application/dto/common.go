package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse respuesta de operaciones masivas.
type CountResponse struct {
	Count int `json:"count"`
}
