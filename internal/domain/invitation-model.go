package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationRevoked  InvitationStatus = "revoked"
	// never written; see Invitation.EffectiveStatus
	InvitationExpired InvitationStatus = "expired"
)

type Invitation struct {
	ID          string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	ProjectID   string           `gorm:"type:varchar(36);not null;uniqueIndex:uidx_invitations_project_invitee,priority:1" json:"project_id"`
	InviteeID   uint             `gorm:"not null;uniqueIndex:uidx_invitations_project_invitee,priority:2;index" json:"invitee_id"`
	Role        Role             `gorm:"type:varchar(10);not null" json:"role"`
	InvitedByID uint             `gorm:"not null;index" json:"invited_by_id"`
	Status      InvitationStatus `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`

	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"project,omitempty"`
	Invitee   *Profile `gorm:"foreignKey:InviteeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"invitee,omitempty"`
	InvitedBy *Profile `gorm:"foreignKey:InvitedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"invited_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InvitationPending
	}
	return nil
}

// EffectiveStatus is the status callers should see: a pending invitation
// whose token lifetime has passed reads as expired.
func (i Invitation) EffectiveStatus(now time.Time, ttl time.Duration) InvitationStatus {
	if i.Status == InvitationPending && i.IsStale(now, ttl) {
		return InvitationExpired
	}
	return i.Status
}

func (i Invitation) IsStale(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.After(i.CreatedAt.Add(ttl))
}
