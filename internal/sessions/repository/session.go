package repository

import (
	"context"
	"errors"
	"fmt"

	"drivent/pkg/auth"
	"drivent/pkg/config"
	mongodb "drivent/pkg/db/mongo"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Sessions"

// SessionRepository backs the auth middleware: a token is only honoured while its session exists.
type SessionRepository interface {
	UserIDForToken(ctx context.Context, token string) (string, error)
}

type mongoSessionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSessionRepository(cfg *config.Config) SessionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSessionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoSessionRepository) UserIDForToken(ctx context.Context, token string) (string, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var session model.Session
	err := r.collection.FindOne(ctx, bson.M{"token": token}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", auth.ErrSessionNotFound
		}
		return "", fmt.Errorf("failed to find session: %w", err)
	}

	return session.UserID, nil
}
