package repository

import (
	"context"
	"errors"
	"fmt"

	enrollmentserrors "drivent/internal/enrollments/errors"
	"drivent/pkg/config"
	mongodb "drivent/pkg/db/mongo"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Enrollments"

type EnrollmentRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Enrollment, error)
}

type mongoEnrollmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEnrollmentRepository(cfg *config.Config) EnrollmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEnrollmentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoEnrollmentRepository) FindByUserID(ctx context.Context, userID string) (*model.Enrollment, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var enrollment model.Enrollment
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&enrollment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, enrollmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find enrollment: %w", err)
	}

	return &enrollment, nil
}
