package models

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150,username"`
	FirstName string `json:"first_name" validate:"required,max=40"`
	LastName  string `json:"last_name" validate:"required,max=40"`
	Email     string `json:"email" validate:"required,email"`
	Password1 string `json:"password1" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password1"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileRequest changes the profile; the password is only changed when NewPassword is set.
type UpdateProfileRequest struct {
	FirstName       string `json:"first_name" validate:"required,max=40"`
	LastName        string `json:"last_name" validate:"required,max=40"`
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"current_password" validate:"required_with=NewPassword"`
	NewPassword     string `json:"new_password" validate:"omitempty,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"eqfield=NewPassword"`
}
