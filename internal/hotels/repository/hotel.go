package repository

import (
	"context"
	"errors"
	"fmt"

	hotelserrors "drivent/internal/hotels/errors"
	"drivent/pkg/config"
	mongodb "drivent/pkg/db/mongo"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	HotelsCollection = "Hotels"
	RoomsCollection  = "Rooms"
)

type HotelRepository interface {
	FindAll(ctx context.Context) ([]*model.Hotel, error)
	FindByID(ctx context.Context, id string) (*model.Hotel, error)
	FindRoomsByHotelID(ctx context.Context, hotelID string) ([]*model.Room, error)
	FindRoomByID(ctx context.Context, id string) (*model.Room, error)
}

type mongoHotelRepository struct {
	cfg    *config.Config
	hotels *mongo.Collection
	rooms  *mongo.Collection
}

func NewMongoHotelRepository(cfg *config.Config) HotelRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoHotelRepository{
		cfg:    cfg,
		hotels: db.Collection(HotelsCollection),
		rooms:  db.Collection(RoomsCollection),
	}
}

func (r *mongoHotelRepository) FindAll(ctx context.Context) ([]*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.hotels.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := []*model.Hotel{}
	if err = cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}

	return hotels, nil
}

func (r *mongoHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var hotel model.Hotel
	if err := r.hotels.FindOne(ctx, bson.M{"_id": objectID}).Decode(&hotel); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find hotel: %w", err)
	}

	return &hotel, nil
}

func (r *mongoHotelRepository) FindRoomsByHotelID(ctx context.Context, hotelID string) ([]*model.Room, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.rooms.Find(ctx, bson.M{"hotelId": hotelID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find rooms: %w", err)
	}
	defer cursor.Close(ctx)

	rooms := []*model.Room{}
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *mongoHotelRepository) FindRoomByID(ctx context.Context, id string) (*model.Room, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", hotelserrors.ErrInvalidID, id)
	}

	var room model.Room
	if err := r.rooms.FindOne(ctx, bson.M{"_id": objectID}).Decode(&room); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, hotelserrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	return &room, nil
}
