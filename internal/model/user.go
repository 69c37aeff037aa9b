package model

import "SmartDocs/internal/role"

// User is the server-side account model. Role is validated against the
// closed role set at registration and never changes afterwards.
type User struct {
	ID       int64     `gorm:"primaryKey"`
	Username string    `gorm:"uniqueIndex;not null"`
	FullName string    `gorm:"not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"` // bcrypt hash
	Role     role.Role `gorm:"not null"`
}
