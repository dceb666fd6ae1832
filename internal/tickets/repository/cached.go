package repository

import (
	"context"

	"drivent/pkg/cache"
	"drivent/pkg/logger"
	"drivent/pkg/model"
)

const (
	typesKey      = "tickets:types"
	typeKeyPrefix = "tickets:types:"
)

// cachedTicketRepository caches the ticket type catalogue. Tickets themselves
// change state on payment and are always read from the store.
type cachedTicketRepository struct {
	TicketRepository
	cache cache.Cache
	log   *logger.Logger
}

func NewCachedTicketRepository(next TicketRepository, c cache.Cache, log *logger.Logger) TicketRepository {
	return &cachedTicketRepository{
		TicketRepository: next,
		cache:            c,
		log:              log,
	}
}

func (r *cachedTicketRepository) ListTypes(ctx context.Context) ([]*model.TicketType, error) {
	return cache.GetOrLoad(ctx, r.cache, r.log, typesKey, r.TicketRepository.ListTypes)
}

func (r *cachedTicketRepository) FindTypeByID(ctx context.Context, id string) (*model.TicketType, error) {
	return cache.GetOrLoad(ctx, r.cache, r.log, typeKeyPrefix+id, func(ctx context.Context) (*model.TicketType, error) {
		return r.TicketRepository.FindTypeByID(ctx, id)
	})
}
