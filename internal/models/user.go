package models

import "time"

// User is a clinic staff account allowed to call the API.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // bcrypt, never serialized
	Role         string    `json:"role"` // admin or nurse
	CreatedAt    time.Time `json:"created_at"`
}
