package dto

import "time"

// LoginRequest entrada para login: nombre de usuario + código numérico.
type LoginRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// SwitchUserRequest cambio de usuario dentro de una sesión abierta.
type SwitchUserRequest struct {
	UserID string `json:"user_id"`
	Code   string `json:"code"`
}

// RecoverRequest respuesta a la pregunta de seguridad + nuevo código del administrador.
type RecoverRequest struct {
	Answer  string `json:"answer"`
	NewCode string `json:"new_code"`
}

// RecoveryQuestionResponse pregunta visible en la pantalla de login.
type RecoveryQuestionResponse struct {
	Question string `json:"question"`
}

// UserResponse salida de un usuario (sin código).
type UserResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// LoginResponse token JWT y usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateUserRequest entrada para crear un usuario.
type CreateUserRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"` // admin | employee
	Avatar string `json:"avatar"`
	Code   string `json:"code"`
}

// UpdateUserRequest entrada para actualizar un usuario; los campos nil no cambian.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
}

// ChangeCodeRequest nuevo código de acceso.
type ChangeCodeRequest struct {
	Code string `json:"code"`
}
