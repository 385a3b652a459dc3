package handler

import "github.com/inkwell/publishing-api/internal/core/domain"

// --- Request / Response types ---

type registerRequest struct {
	Username  string   `json:"username"  validate:"required,min=3"`
	Email     string   `json:"email"     validate:"required,email"`
	Password  string   `json:"password"  validate:"required,min=6"`
	Interests []string `json:"interests"`
}

type registerResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp"   validate:"required,len=6"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	OTP         string `json:"otp"          validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// userResponse is the identity summary returned to clients. Credential hash
// and OTP state are never included.
type userResponse struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Interests  []string `json:"interests"`
	IsVerified bool     `json:"is_verified"`
}

type sessionResponse struct {
	Message      string       `json:"message,omitempty"`
	User         userResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func toUserResponse(u *domain.User) userResponse {
	interests := u.Interests
	if interests == nil {
		interests = []string{}
	}
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       string(u.Role),
		Interests:  interests,
		IsVerified: u.IsVerified,
	}
}
