package dto

import "time"

// RegisterRequest entrada para registro: identificador (email o alias) y password.
type RegisterRequest struct {
	Identifier string `json:"identifier" validate:"required,max=200"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
