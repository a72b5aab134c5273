package dto

import (
	"time"

	"github.com/SundayYogurt/projecthub/internal/domain"
)

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type ProfileResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProfileResponse(p domain.Profile, email string) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Email:       email,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		FullName:    p.FullName(),
		AvatarURL:   p.AvatarURL,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}
