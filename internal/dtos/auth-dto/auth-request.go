package auth_dto

// RegisterUserRequest repräsentiert die Daten, die für die Registrierung eines Benutzers benötigt werden.
type RegisterUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required,min=3"`
	Username        string `json:"username" validate:"required,min=3,max=30"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// LoginUserRequest: Identifier ist E-Mail oder Benutzername.
type LoginUserRequest struct {
	Identifier string `json:"username_or_email" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

type LoginMetadata struct {
	UserAgent string
	Device    string
	IP        string
}
