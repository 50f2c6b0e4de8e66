package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMemberType is assigned when a profile is created without an
// explicit member_type.
const DefaultMemberType = "core"

// UserProfile represents a chapter member keyed by the UUID issued by the
// external identity provider. Profiles are created on first login and are
// never deleted in-system.
type UserProfile struct {
	ID          uint       `json:"-" db:"id" gorm:"primaryKey;autoIncrement"`
	UUID        uuid.UUID  `json:"uuid" db:"uuid" gorm:"type:uuid;not null;uniqueIndex"`
	Email       string     `json:"email" db:"email" gorm:"type:varchar(320);not null"`
	FullName    string     `json:"full_name" db:"full_name" gorm:"type:varchar(200);not null"`
	IsActive    bool       `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	LastLogin   *time.Time `json:"last_login,omitempty" db:"last_login"`
	AcmMemberID *string    `json:"acm_member_id,omitempty" db:"acm_member_id" gorm:"type:varchar(50)"`
	MemberType  string     `json:"member_type" db:"member_type" gorm:"type:varchar(50);not null;default:core"`
	RoleType    *string    `json:"role_type,omitempty" db:"role_type" gorm:"type:varchar(50)"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at" gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at" gorm:"not null;autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
