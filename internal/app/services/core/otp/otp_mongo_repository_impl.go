package otp

import (
	"context"
	"healdoctor-service/internal/app/contracts"
	"healdoctor-service/internal/app/models"
	"healdoctor-service/internal/pkg/constvars"
	"healdoctor-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OTPMongoRepository struct {
	Collection *mongo.Collection
}

func NewOTPMongoRepository(db *mongo.Client, dbName string) contracts.OTPRepository {
	return &OTPMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionOTP),
	}
}

// EnsureIndexes sets up the TTL sweep on expirationTime and the lookup index
// on identifier. Validation still checks expiry itself since the TTL monitor
// only runs periodically.
func (r *OTPMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expirationTime", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{
				{Key: "identifier", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	return err
}

func (r *OTPMongoRepository) DeleteByIdentifier(ctx context.Context, identifier string) error {
	_, err := r.Collection.DeleteMany(ctx, bson.M{"identifier": identifier})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *OTPMongoRepository) Insert(ctx context.Context, otpModel *models.OTP) error {
	_, err := r.Collection.InsertOne(ctx, otpModel)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *OTPMongoRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.OTP, error) {
	var otpModel models.OTP
	err := r.Collection.FindOne(ctx, bson.M{"identifier": identifier}).Decode(&otpModel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &otpModel, nil
}
