package domain

import (
	"strings"
	"time"
)

type Profile struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	AccountID   uint    `gorm:"uniqueIndex;not null" json:"account_id"`
	FirstName   string  `gorm:"type:varchar(150)" json:"first_name"`
	LastName    string  `gorm:"type:varchar(150)" json:"last_name"`
	AvatarURL   *string `gorm:"type:text" json:"avatar_url,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
