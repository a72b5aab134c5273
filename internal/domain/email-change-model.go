package domain

import "time"

type EmailChangeRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  uint      `gorm:"not null;index" json:"account_id"`
	Account    *Account  `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	NewEmail   string    `gorm:"type:varchar(254);not null" json:"new_email"`
	CodeHash   string    `gorm:"not null" json:"-"`
	IsVerified bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (r EmailChangeRequest) Expired(now time.Time, ttl time.Duration) bool {
	return now.After(r.CreatedAt.Add(ttl))
}
