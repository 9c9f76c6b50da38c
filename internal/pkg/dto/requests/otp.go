package requests

type IssueOTP struct {
	Identifier string `json:"identifier" validate:"required,email,max=255"`
}

type ValidateOTP struct {
	Identifier string `json:"identifier" validate:"required,email,max=255"`
	Code       string `json:"code" validate:"required,numeric,min=4,max=8"`
}
