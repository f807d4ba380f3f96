package models

import (
	"time"
)

// User es la cuenta local; los usuarios de Clerk se sincronizan vía webhook
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // El "-" evita que se serialice en JSON
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
