package model

import "SmartDocs/internal/role"

// AccessLevel is the level an AccessGrant conveys.
type AccessLevel string

const (
	LevelView     AccessLevel = "view"
	LevelEdit     AccessLevel = "edit"
	LevelDownload AccessLevel = "download"
)

// ValidLevel reports whether s is a known access level.
func ValidLevel(s string) bool {
	switch AccessLevel(s) {
	case LevelView, LevelEdit, LevelDownload:
		return true
	}
	return false
}

// AccessGrant authorizes a specific user or a whole role to access one
// document. Exactly one of UserID/Role is set; the service layer enforces
// the exclusivity. Rows are append-only and removed together with their
// document.
type AccessGrant struct {
	ID         int64 `gorm:"primaryKey"`
	DocumentID int64 `gorm:"not null;index"`

	Document *Document `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	UserID *int64     `gorm:"index"` // grantee user, nil for role grants
	Role   *role.Role `gorm:"index"` // grantee role, nil for user grants

	GrantedBy *int64 // who authorized the grant, nil when unknown

	Level AccessLevel `gorm:"not null;default:view"`
}
