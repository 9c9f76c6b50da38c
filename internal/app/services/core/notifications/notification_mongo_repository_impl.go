package notifications

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationMongoRepository struct {
	Collection *mongo.Collection
}

func NewNotificationMongoRepository(db *mongo.Client, dbName string) contracts.NotificationRepository {
	return &NotificationMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionNotifications),
	}
}

// EnsureIndexes sets up the TTL sweep on expiryDate and the listing index.
// Reads still filter on expiryDate themselves since the TTL monitor only runs
// periodically.
func (r *NotificationMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expiryDate", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{
				{Key: "doctorId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	return err
}

func (r *NotificationMongoRepository) Insert(ctx context.Context, notification *models.Notification) error {
	result, err := r.Collection.InsertOne(ctx, notification)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid.Hex()
	}
	return nil
}

// FindByDoctorID returns the doctor's own notifications plus broadcasts,
// newest first. Expired records are excluded even when the TTL monitor has
// not swept them yet.
func (r *NotificationMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"doctorId": doctorID},
			{"doctorId": bson.M{"$exists": false}},
			{"doctorId": ""},
		},
		"expiryDate": bson.M{"$gt": time.Now()},
	}
	sort := bson.D{{Key: "createdAt", Value: -1}}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, nil
}

func (r *NotificationMongoRepository) FindUnreadByDoctorID(ctx context.Context, doctorID string) ([]models.Notification, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"doctorId": doctorID},
			{"doctorId": bson.M{"$exists": false}},
			{"doctorId": ""},
		},
		"isRead":     false,
		"expiryDate": bson.M{"$gt": time.Now()},
	}
	sort := bson.D{{Key: "createdAt", Value: -1}}
	cursor, err := r.Collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return notifications, nil
}

func (r *NotificationMongoRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return nil, nil
	}

	var notification models.Notification
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &notification, nil
}

func (r *NotificationMongoRepository) Update(ctx context.Context, notification *models.Notification) error {
	objectID, err := primitive.ObjectIDFromHex(notification.ID)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}

	update := bson.M{"$set": bson.M{"isRead": notification.IsRead}}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *NotificationMongoRepository) MarkAllReadByDoctorID(ctx context.Context, doctorID string) (int64, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"doctorId": doctorID},
			{"doctorId": bson.M{"$exists": false}},
			{"doctorId": ""},
		},
		"isRead": false,
	}
	result, err := r.Collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func (r *NotificationMongoRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.Collection.DeleteMany(ctx, bson.M{"expiryDate": bson.M{"$lte": cutoff}})
	if err != nil {
		return 0, exceptions.ErrMongoDBDeleteDocument(err)
	}
	return result.DeletedCount, nil
}
