package dto

import "time"

type RegisterRequest struct {
	FirstName            string `json:"first_name" binding:"required,min=2,max=50"`
	LastName             string `json:"last_name" binding:"required,min=2,max=50"`
	Email                string `json:"email" binding:"required,email"`
	Phone                string `json:"phone" binding:"omitempty,min=10,max=15"`
	Password             string `json:"password" binding:"required,min=8,max=100"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // seconds
	User      UserResponse `json:"user"`
}

type SendResetLinkRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest arrives from the emailed link's form. Token is the
// raw secret; it is consumed atomically with the password write.
type ResetPasswordRequest struct {
	Email                string `json:"email" form:"email" binding:"required,email"`
	Token                string `json:"token" form:"token" binding:"required"`
	Password             string `json:"password" form:"password" binding:"required,min=8,max=100"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
}

type UpdatePasswordRequest struct {
	OldPassword          string `json:"old_password" binding:"required"`
	Password             string `json:"password" binding:"required,min=8,max=100"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
