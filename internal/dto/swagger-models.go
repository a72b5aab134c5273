package dto

// Response shapes referenced from swagger annotations only.

type APIError struct {
	Error string `json:"error" example:"invitation not found"`
}

type APIValidationError struct {
	Errors map[string][]string `json:"errors"`
}

type APISuccessString struct {
	Data string `json:"data" example:"ok"`
}

type APISuccessRegister struct {
	Data RegisterResponse `json:"data"`
}

type APISuccessLogin struct {
	Data LoginResponse `json:"data"`
}

type APISuccessProfile struct {
	Data ProfileResponse `json:"data"`
}

type APISuccessProject struct {
	Data ProjectResponse `json:"data"`
}

type APISuccessProjectPage struct {
	Data Page[ProjectResponse] `json:"data"`
}

type APISuccessInvitation struct {
	Data InvitationResponse `json:"data"`
}

type APISuccessTask struct {
	Data TaskResponse `json:"data"`
}
