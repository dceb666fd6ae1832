package repository

import (
	"context"

	"drivent/pkg/cache"
	"drivent/pkg/logger"
	"drivent/pkg/model"
	"drivent/pkg/sanitizer"
)

const (
	hotelsKey      = "hotels:all"
	hotelKeyPrefix = "hotels:"
	roomsKeyPrefix = "hotels:rooms:"
)

// cachedHotelRepository is a read-through cache over the hotel catalogue. Room
// lookups used for capacity decisions always go to the store.
type cachedHotelRepository struct {
	next  HotelRepository
	cache cache.Cache
	log   *logger.Logger
}

func NewCachedHotelRepository(next HotelRepository, c cache.Cache, log *logger.Logger) HotelRepository {
	return &cachedHotelRepository{
		next:  next,
		cache: c,
		log:   log,
	}
}

// FindAll does not cache an empty catalogue, so hotels seeded afterwards show up
// without waiting for the TTL.
func (r *cachedHotelRepository) FindAll(ctx context.Context) ([]*model.Hotel, error) {
	var hotels []*model.Hotel
	hit, err := r.cache.Get(ctx, hotelsKey, &hotels)
	if err != nil {
		r.log.Warn("Cache read failed, loading from store", "key", hotelsKey, "error", err)
	}
	if hit {
		return hotels, nil
	}

	hotels, err = r.next.FindAll(ctx)
	if err != nil || len(hotels) == 0 {
		return hotels, err
	}
	if err := r.cache.Set(ctx, hotelsKey, hotels); err != nil {
		r.log.Warn("Cache write failed", "key", hotelsKey, "error", err)
	}
	return hotels, nil
}

func (r *cachedHotelRepository) FindByID(ctx context.Context, id string) (*model.Hotel, error) {
	return cache.GetOrLoad(ctx, r.cache, r.log, hotelKeyPrefix+sanitizer.NormalizeObjectID(id), func(ctx context.Context) (*model.Hotel, error) {
		return r.next.FindByID(ctx, id)
	})
}

func (r *cachedHotelRepository) FindRoomsByHotelID(ctx context.Context, hotelID string) ([]*model.Room, error) {
	return cache.GetOrLoad(ctx, r.cache, r.log, roomsKeyPrefix+sanitizer.NormalizeObjectID(hotelID), func(ctx context.Context) ([]*model.Room, error) {
		return r.next.FindRoomsByHotelID(ctx, hotelID)
	})
}

func (r *cachedHotelRepository) FindRoomByID(ctx context.Context, id string) (*model.Room, error) {
	return r.next.FindRoomByID(ctx, id)
}
