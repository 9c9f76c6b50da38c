package models

import "time"

type NotificationType string

const (
	NotificationTypeSystem    NotificationType = "SYSTEM"
	NotificationTypeInfo      NotificationType = "INFO"
	NotificationTypeEmergency NotificationType = "EMERGENCY"
	NotificationTypeSupport   NotificationType = "SUPPORT"
)

// Notification is an informational record surfaced to a doctor. An empty
// DoctorID means broadcast to all doctors.
type Notification struct {
	ID         string           `json:"id" bson:"_id,omitempty"`
	DoctorID   string           `json:"doctorId,omitempty" bson:"doctorId,omitempty"`
	Type       NotificationType `json:"type" bson:"type"`
	Title      string           `json:"title" bson:"title"`
	Message    string           `json:"message" bson:"message"`
	IsRead     bool             `json:"isRead" bson:"isRead"`
	CreatedAt  time.Time        `json:"createdAt" bson:"createdAt"`
	ExpiryDate time.Time        `json:"expiryDate" bson:"expiryDate"`
}
