package appointments

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// EnsureIndexes backs the duplicate guard and the day-window queries. The
// compound index is not unique: CANCELLED and BOOKED rows may repeat, only
// ACCEPTED duplicates are rejected and that check lives in the usecase under
// the booking lock.
func (r *AppointmentMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "patientName", Value: 1},
				{Key: "contact", Value: 1},
				{Key: "appointmentDateTime", Value: 1},
			},
		},
		{
			Keys:    bson.D{{Key: "appointmentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "appointmentDateTime", Value: 1},
			},
		},
	})
	return err
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) error {
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindByAppointmentID(ctx context.Context, doctorID, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	filter := bson.M{"appointmentId": appointmentID, "doctorId": doctorID}
	err := r.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindAllByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.findSorted(ctx, bson.M{"doctorId": doctorID})
}

func (r *AppointmentMongoRepository) FindByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId":            doctorID,
		"appointmentDateTime": bson.M{"$gte": from, "$lte": to},
	}
	return r.findSorted(ctx, filter)
}

// findSorted orders emergencies first, then by scheduled time, then by the
// appointment id as a stable tie-break.
func (r *AppointmentMongoRepository) findSorted(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	sort := bson.D{
		{Key: "isEmergency", Value: -1},
		{Key: "appointmentDateTime", Value: 1},
		{Key: "appointmentId", Value: 1},
	}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) ExistsActiveDuplicate(ctx context.Context, doctorID, patientName, contact string, from, to time.Time) (bool, error) {
	filter := bson.M{
		"doctorId":            doctorID,
		"patientName":         patientName,
		"contact":             contact,
		"status":              models.AppointmentStatusAccepted,
		"appointmentDateTime": bson.M{"$gte": from, "$lte": to},
	}
	count, err := r.Collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count > 0, nil
}

func (r *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	filter := bson.M{"appointmentId": appointment.AppointmentID, "doctorId": appointment.DoctorID}
	update := bson.M{"$set": appointment}
	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) CountByDoctorIDWithinWindow(ctx context.Context, doctorID string, from, to time.Time) (int64, error) {
	filter := bson.M{
		"doctorId":            doctorID,
		"appointmentDateTime": bson.M{"$gte": from, "$lte": to},
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
