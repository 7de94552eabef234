package dto

type LoginResponseDTO struct {
	AuthorizationURL string `json:"authorization_url"`
}

type CallbackUserDTO struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type CallbackResponseDTO struct {
	Token string          `json:"jwt_token"`
	User  CallbackUserDTO `json:"user"`
}
