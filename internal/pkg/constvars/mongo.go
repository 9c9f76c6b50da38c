package constvars

const (
	MongoCollectionAppointments  = "appointments"
	MongoCollectionOTP           = "otp"
	MongoCollectionNotifications = "notification"
	MongoCollectionDoctors       = "doctors"
)
