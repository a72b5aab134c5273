package dto

import (
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,max=150" example:"Roadmap"`
	Description string `json:"description" validate:"max=5000"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=private public closed" example:"private"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Visibility  *string `json:"visibility,omitempty" validate:"omitempty,oneof=private public closed"`
}

type ProjectResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Visibility  domain.Visibility `json:"visibility"`
	OwnerID     uint              `json:"owner_id"`
	Role        domain.Role       `json:"role,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewProjectResponse(p domain.Project, role domain.Role) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Visibility:  p.Visibility,
		OwnerID:     p.OwnerID,
		Role:        role,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type MemberResponse struct {
	ProfileID uint        `json:"profile_id"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	JoinedAt  time.Time   `json:"joined_at"`
}

func NewMemberResponse(m domain.Membership) MemberResponse {
	resp := MemberResponse{
		ProfileID: m.ProfileID,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt,
	}
	if m.Profile != nil {
		resp.FullName = m.Profile.FullName()
	}
	return resp
}
