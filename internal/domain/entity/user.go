package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User propietario de un catálogo de SKUs. Cada usuario solo ve sus propios datos.
type User struct {
	ID           string
	Identifier   string // email o alias, normalizado (trim + case folding)
	PasswordHash string // bcrypt hash
	Name         string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
