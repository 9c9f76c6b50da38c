package requests

type RegisterDoctor struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,password"`
	Specialty string `json:"specialty,omitempty" validate:"omitempty,max=100"`
	OTP       string `json:"otp" validate:"required,numeric"`
}

type LoginDoctor struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePassword struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}

type UpdateEmail struct {
	NewEmail string `json:"newEmail" validate:"required,email,max=255"`
	OTP      string `json:"otp" validate:"required,numeric"`
}

type ForgotPassword struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,numeric"`
	NewPassword string `json:"newPassword" validate:"required,password"`
}
