package model

import "time"

// Roles a user can hold. Route permissions are expressed in these.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
)

// User represents a platform user managed through the users API.
// Deletion is logical: the row stays with the tombstone columns set.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"` // Never expose in JSON
	Age          int        `json:"age"`
	Role         string     `json:"role" gorm:"size:50;default:'user'"`
	IsActive     bool       `json:"isActive" gorm:"default:true"`
	CreatedBy    string     `json:"createdBy,omitempty" gorm:"size:255"`
	UpdatedBy    string     `json:"updatedBy,omitempty" gorm:"size:255"`
	Deleted      bool       `json:"deleted,omitempty" gorm:"default:false;index"`
	DeletedBy    string     `json:"deletedBy,omitempty" gorm:"size:255"`
	DeletedAt    *time.Time `json:"deletedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
