package domain

import "time"

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Invitable reports whether the role can be granted through an invitation.
// Ownership only comes from creating the project.
func (r Role) Invitable() bool {
	return r == RoleAdmin || r == RoleMember || r == RoleViewer
}

// Membership is the durable grant of a role on a project.
// There is at most one row per (project, profile).
type Membership struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID string `gorm:"type:varchar(36);not null;uniqueIndex:uidx_memberships_project_profile,priority:1" json:"project_id"`
	ProfileID uint   `gorm:"not null;uniqueIndex:uidx_memberships_project_profile,priority:2;index" json:"profile_id"`
	Role      Role   `gorm:"type:varchar(10);not null" json:"role"`

	Project *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Profile *Profile `gorm:"foreignKey:ProfileID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"profile,omitempty"`

	JoinedAt time.Time `gorm:"autoCreateTime;index" json:"joined_at"`
}
