package service

import (
	"context"
	"errors"

	"drivent/internal/entitlement"
	hotelserrors "drivent/internal/hotels/errors"
	"drivent/internal/hotels/repository"
	"drivent/pkg/config"
	apperrors "drivent/pkg/errors"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccessResolver interface {
	HotelAccess(ctx context.Context, userID string) (*entitlement.Access, error)
}

type HotelService interface {
	List(ctx context.Context, userID string) ([]*model.Hotel, error)
	GetWithRooms(ctx context.Context, userID, hotelID string) (*model.Hotel, error)
}

type hotelService struct {
	repo   repository.HotelRepository
	access AccessResolver
	cfg    *config.Config
}

func NewHotelService(repo repository.HotelRepository, access AccessResolver, cfg *config.Config) HotelService {
	return &hotelService{
		repo:   repo,
		access: access,
		cfg:    cfg,
	}
}

func (s *hotelService) List(ctx context.Context, userID string) ([]*model.Hotel, error) {
	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	hotels, err := s.repo.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list hotels", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotels", err)
	}
	if len(hotels) == 0 {
		return nil, apperrors.NotFound("Hotels")
	}

	return hotels, nil
}

func (s *hotelService) GetWithRooms(ctx context.Context, userID, hotelID string) (*model.Hotel, error) {
	if !primitive.IsValidObjectID(hotelID) {
		return nil, apperrors.NotFoundWithID("Hotel", hotelID)
	}
	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	hotel, err := s.repo.FindByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrNotFound) || errors.Is(err, hotelserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Hotel", hotelID)
		}
		s.cfg.Log.Error("Failed to load hotel", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve hotel", err)
	}

	rooms, err := s.repo.FindRoomsByHotelID(ctx, hotelID)
	if err != nil {
		s.cfg.Log.Error("Failed to load rooms", "hotel_id", hotelID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve rooms", err)
	}

	withRooms := *hotel
	withRooms.Rooms = rooms
	return &withRooms, nil
}

// checkAccess reports ticket problems as 402 so clients can send the user to payment.
func (s *hotelService) checkAccess(ctx context.Context, userID string) error {
	_, err := s.access.HotelAccess(ctx, userID)
	if err == nil {
		return nil
	}

	if entitlement.IsForbidden(err) {
		s.cfg.Log.Info("Hotel access denied", "user_id", userID, "reason", err.Error())
		return apperrors.PaymentRequired(err.Error())
	}
	return entitlement.ToAppError(err, "check hotel access")
}
