package model

import "time"

// AccessMode is the default visibility of a document.
type AccessMode string

const (
	// AccessAllEmployees makes the document readable by any authenticated
	// user, regardless of grants.
	AccessAllEmployees AccessMode = "all_employees"
	// AccessRestricted limits the document to senior roles, the owner and
	// explicitly granted users/roles.
	AccessRestricted AccessMode = "restricted"
)

// Document is the metadata record for an uploaded file. The content itself
// lives in the blob store under BlobPath.
type Document struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string
	FileName    string `gorm:"not null"` // original client-side name
	BlobPath    string `gorm:"not null"`
	UserID      int64  `gorm:"not null;index"` // uploader, owns the record

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Department string     `gorm:"not null;default:General"`
	AccessMode AccessMode `gorm:"not null;default:all_employees"`

	UploadedAt time.Time `gorm:"autoCreateTime"`
}
