package requests

type CreateNotification struct {
	Type    string `json:"type" validate:"required,oneof=SYSTEM INFO EMERGENCY SUPPORT"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required,min=1,max=2000"`
}
