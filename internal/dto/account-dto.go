package dto

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email,max=254" example:"alice@example.com"`
	FirstName       string `json:"first_name" validate:"required,max=150" example:"Alice"`
	LastName        string `json:"last_name" validate:"required,max=150" example:"Smith"`
	Password        string `json:"password" validate:"required" example:"s3cure-pass"`
	PasswordConfirm string `json:"password_confirm" validate:"required" example:"s3cure-pass"`
}

type RegisterResponse struct {
	Email    string `json:"email" example:"alice@example.com"`
	FullName string `json:"full_name" example:"Alice Smith"`
}

type ResendActivationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Access    string `json:"access"`
	UserID    uint   `json:"user_id"`
	UserEmail string `json:"user_email"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type ChangeEmailRequest struct {
	NewEmail string `json:"new_email" validate:"required,email,max=254"`
}

type ConfirmEmailChangeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}
