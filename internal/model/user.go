package model

import "time"

// Role names stored on users and carried in session tokens.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User represents an application account as stored in the `users` table.
// Accounts are created at seed time or through registration and are
// immutable afterwards. The password is stored only as a bcrypt hash;
// handlers must never serialize it back to clients.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"size:191;not null" json:"name"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:32;not null;default:USER" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
