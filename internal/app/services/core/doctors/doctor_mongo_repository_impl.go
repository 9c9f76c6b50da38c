package doctors

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

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "doctorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (r *DoctorMongoRepository) Insert(ctx context.Context, doctor *models.Doctor) error {
	_, err := r.Collection.InsertOne(ctx, doctor)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *DoctorMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"doctorId": doctorID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	doctorList := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctorList); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctorList, nil
}

func (r *DoctorMongoRepository) Update(ctx context.Context, doctor *models.Doctor) error {
	filter := bson.M{"doctorId": doctor.DoctorID}
	update := bson.M{"$set": bson.M{
		"name":      doctor.Name,
		"email":     doctor.Email,
		"password":  doctor.Password,
		"specialty": doctor.Specialty,
		"updatedAt": doctor.UpdatedAt,
	}}
	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
