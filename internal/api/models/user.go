package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. Role is the single source of truth; admin/moderator are
// derived from it (plus the superuser flag) rather than stored separately.
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string `gorm:"size:150" json:"first_name"`
	LastName    string `gorm:"size:150" json:"last_name"`
	Bio         string `gorm:"type:text" json:"bio"`
	Role        string `gorm:"size:9;default:'user';not null" json:"role"`
	IsSuperuser bool   `gorm:"default:false;not null" json:"-"`
	// bcrypt hash of the confirmation code; the plaintext only leaves the
	// process inside the signup email
	ConfirmationCode string    `gorm:"column:confirmation_code;not null" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = RoleUser
	}
	return
}

// IsAdmin reports whether the user has admin privileges.
// Superusers always count as admins.
func (user *User) IsAdmin() bool {
	return user.IsSuperuser || user.Role == RoleAdmin
}

// IsModerator reports whether the user has the moderator role.
func (user *User) IsModerator() bool {
	return user.Role == RoleModerator
}

func (User) TableName() string {
	return "users"
}
