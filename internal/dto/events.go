package dto

// Event keys published on the mail topic. The Kafka message key carries one
// of these and the value is the matching JSON event below.
const (
	EventActivation    = "user.activation"
	EventChangeEmail   = "user.change_email"
	EventResetPassword = "user.reset_password"
	EventInvitation    = "project.invitation"
)

type ActivationEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type ChangeEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type InvitationEvent struct {
	InvitationID string `json:"invitation_id"`
	Email        string `json:"email"`
	InviteeName  string `json:"invitee_name"`
	InviterName  string `json:"inviter_name"`
	ProjectName  string `json:"project_name"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	ExpiresAt    string `json:"expires_at"`
}
