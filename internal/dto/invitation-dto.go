package dto

import (
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
)

type InviteRequest struct {
	Email string `json:"email" validate:"required,email" example:"bob@example.com"`
	Role  string `json:"role" validate:"required,oneof=admin member viewer" example:"member"`
}

type InvitationResponse struct {
	ID          string                  `json:"id"`
	ProjectID   string                  `json:"project_id"`
	ProjectName string                  `json:"project_name,omitempty"`
	InviteeID   uint                    `json:"invitee_id"`
	InvitedByID uint                    `json:"invited_by_id"`
	Role        domain.Role             `json:"role"`
	Status      domain.InvitationStatus `json:"status"`
	CreatedAt   time.Time               `json:"created_at"`
}

// NewInvitationResponse reports the effective status, so a pending
// invitation past its lifetime shows as expired.
func NewInvitationResponse(inv domain.Invitation, now time.Time, ttl time.Duration) InvitationResponse {
	resp := InvitationResponse{
		ID:          inv.ID,
		ProjectID:   inv.ProjectID,
		InviteeID:   inv.InviteeID,
		InvitedByID: inv.InvitedByID,
		Role:        inv.Role,
		Status:      inv.EffectiveStatus(now, ttl),
		CreatedAt:   inv.CreatedAt,
	}
	if inv.Project != nil {
		resp.ProjectName = inv.Project.Name
	}
	return resp
}
