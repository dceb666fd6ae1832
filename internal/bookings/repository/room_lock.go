package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "drivent/internal/bookings/errors"
	"drivent/pkg/config"
	mongodb "drivent/pkg/db/mongo"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const RoomLocksCollection = "Room_locks"

// RoomLockRepository stores advisory locks that serialise writers per room.
type RoomLockRepository interface {
	Acquire(ctx context.Context, lock *model.RoomLock) error
	Release(ctx context.Context, lock *model.RoomLock) error
}

type mongoRoomLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		cfg:        cfg,
		collection: db.Collection(RoomLocksCollection),
	}
}

// Acquire inserts the lock document. A lock whose expiry has passed but which the
// TTL monitor has not removed yet is taken over. Returns ErrLockHeld otherwise.
func (r *mongoRoomLockRepository) Acquire(ctx context.Context, lock *model.RoomLock) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err == nil {
		return nil
	}
	if !mongodb.IsDuplicateKey(err) {
		return fmt.Errorf("failed to acquire room lock: %w", err)
	}

	filter := bson.M{"_id": lock.ID, "expires_at": bson.M{"$lt": lock.CreatedAt}}
	err = r.collection.FindOneAndReplace(ctx, filter, lock).Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return bookingserrors.ErrLockHeld
	}
	return fmt.Errorf("failed to take over expired room lock: %w", err)
}

// Release deletes the lock only while lock.Owner still holds it. A lock that
// expired and was taken over by another request is left alone.
func (r *mongoRoomLockRepository) Release(ctx context.Context, lock *model.RoomLock) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lock.ID, "owner": lock.Owner}); err != nil {
		return fmt.Errorf("failed to release room lock: %w", err)
	}
	return nil
}
