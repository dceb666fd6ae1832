package service

import (
	"context"
	"errors"
	"time"

	bookingserrors "drivent/internal/bookings/errors"
	"drivent/internal/bookings/repository"
	"drivent/internal/bookings/validator"
	"drivent/internal/entitlement"
	hotelserrors "drivent/internal/hotels/errors"
	"drivent/pkg/config"
	apperrors "drivent/pkg/errors"
	"drivent/pkg/events"
	"drivent/pkg/model"
	"drivent/pkg/sanitizer"
	"drivent/pkg/validation"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const roomLockPrefix = "room_lock_"

type AccessResolver interface {
	HotelAccess(ctx context.Context, userID string) (*entitlement.Access, error)
}

type RoomFinder interface {
	FindRoomByID(ctx context.Context, id string) (*model.Room, error)
}

type BookingService interface {
	GetByUser(ctx context.Context, userID string) (*model.BookingWithRoom, error)
	Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.BookingResponse, error)
	Update(ctx context.Context, userID, bookingID string, req *model.BookingRequest) (*model.BookingResponse, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	rooms     RoomFinder
	access    AccessResolver
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	rooms RoomFinder,
	access AccessResolver,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		rooms:     rooms,
		access:    access,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) GetByUser(ctx context.Context, userID string) (*model.BookingWithRoom, error) {
	booking, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to load booking", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	room, err := s.rooms.FindRoomByID(ctx, booking.RoomID)
	if err != nil && !errors.Is(err, hotelserrors.ErrRoomNotFound) {
		s.cfg.Log.Error("Failed to load booked room", "booking_id", booking.ID, "room_id", booking.RoomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return &model.BookingWithRoom{ID: booking.ID, Room: room}, nil
}

func (s *bookingService) Create(ctx context.Context, userID string, req *model.BookingRequest) (*model.BookingResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserID(ctx, userID); err == nil {
		return nil, apperrors.Forbidden("User already has a booking")
	} else if !errors.Is(err, bookingserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to load booking", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	room, err := s.room(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{UserID: userID, RoomID: room.ID}
	err = s.withRoomLock(ctx, room.ID, func(sessCtx mongo.SessionContext) error {
		if err := s.checkCapacity(sessCtx, room, false); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrAlreadyExists) {
				return apperrors.Forbidden("User already has a booking")
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to create booking", userID, room.ID, err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"user_id", userID,
		"room_id", room.ID,
	)
	s.publish(ctx, s.publisher.BookingCreated, booking)

	return &model.BookingResponse{BookingID: booking.ID}, nil
}

func (s *bookingService) Update(ctx context.Context, userID, bookingID string, req *model.BookingRequest) (*model.BookingResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, userID); err != nil {
		return nil, err
	}

	// A missing booking is reported as Forbidden, same as someone else's booking.
	existing, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.Forbidden("User has no booking to change")
		}
		s.cfg.Log.Error("Failed to load booking", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to update booking", err)
	}
	if existing.ID != sanitizer.NormalizeObjectID(bookingID) {
		s.cfg.Log.Warn("Booking does not belong to user", "user_id", userID, "booking_id", bookingID)
		return nil, apperrors.Forbidden("Booking does not belong to user")
	}

	room, err := s.room(ctx, req.RoomID)
	if err != nil {
		return nil, err
	}

	err = s.withRoomLock(ctx, room.ID, func(sessCtx mongo.SessionContext) error {
		if err := s.checkCapacity(sessCtx, room, existing.RoomID == room.ID); err != nil {
			return err
		}
		if err := s.repo.UpdateRoom(sessCtx, existing.ID, room.ID); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.Forbidden("User has no booking to change")
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.logFailure("Failed to update booking", userID, room.ID, err)
		return nil, err
	}

	s.cfg.Log.Info("Booking updated successfully",
		"id", existing.ID,
		"user_id", userID,
		"from_room_id", existing.RoomID,
		"to_room_id", room.ID,
	)
	existing.RoomID = room.ID
	s.publish(ctx, s.publisher.BookingUpdated, existing)

	return &model.BookingResponse{BookingID: existing.ID}, nil
}

// --- Helpers ---

func (s *bookingService) validate(req *model.BookingRequest) error {
	sanitizer.SanitizeBookingRequest(req)
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.InvalidInput("Booking validation failed").WithDetails(validation.DetailsOf(err))
	}
	return nil
}

func (s *bookingService) checkAccess(ctx context.Context, userID string) error {
	if _, err := s.access.HotelAccess(ctx, userID); err != nil {
		if _, ok := entitlement.AsViolation(err); ok {
			s.cfg.Log.Info("Booking access denied", "user_id", userID, "reason", err.Error())
		} else {
			s.cfg.Log.Error("Failed to check booking access", "user_id", userID, "error", err)
		}
		return entitlement.ToAppError(err, "check booking access")
	}
	return nil
}

func (s *bookingService) room(ctx context.Context, roomID string) (*model.Room, error) {
	room, err := s.rooms.FindRoomByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, hotelserrors.ErrRoomNotFound) || errors.Is(err, hotelserrors.ErrInvalidID) {
			return nil, entitlement.ToAppError(entitlement.CheckRoomCapacity(nil, 0), "load room")
		}
		s.cfg.Log.Error("Failed to load room", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}
	return room, nil
}

// checkCapacity counts the room's bookings inside the transaction. When the
// booking being moved already sits in the room it is not counted against itself.
func (s *bookingService) checkCapacity(sessCtx mongo.SessionContext, room *model.Room, alreadyInRoom bool) error {
	occupied, err := s.repo.CountByRoom(sessCtx, room.ID)
	if err != nil {
		return apperrors.Internal("Failed to check room capacity", err)
	}
	if alreadyInRoom && occupied > 0 {
		occupied--
	}
	if err := entitlement.CheckRoomCapacity(room, occupied); err != nil {
		return entitlement.ToAppError(err, "check room capacity")
	}
	return nil
}

// withRoomLock holds the room's advisory lock while fn runs in a transaction.
// The transaction is bounded by the lock's expiry: once the lock can be taken
// over, the transaction can no longer commit.
func (s *bookingService) withRoomLock(ctx context.Context, roomID string, fn func(sessCtx mongo.SessionContext) error) error {
	lock := &model.RoomLock{
		ID:        roomLockPrefix + roomID,
		Owner:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(s.cfg.RoomLockTTL),
	}

	if err := s.lockRepo.Acquire(ctx, lock); err != nil {
		if errors.Is(err, bookingserrors.ErrLockHeld) {
			return apperrors.Conflict("This room is currently being booked by another request. Please try again.")
		}
		return apperrors.Internal("Failed to acquire room lock", err)
	}
	defer func() {
		if err := s.lockRepo.Release(context.WithoutCancel(ctx), lock); err != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lock.ID, "error", err)
		}
	}()

	txCtx, cancel := context.WithDeadline(ctx, lock.ExpiresAt)
	defer cancel()

	err := s.repo.ExecuteTransaction(txCtx, fn)
	if err != nil && txCtx.Err() != nil && ctx.Err() == nil {
		return apperrors.Timeout("Room lock expired before the booking was written")
	}
	return err
}

func (s *bookingService) publish(ctx context.Context, emit func(context.Context, events.BookingEvent) error, booking *model.Booking) {
	err := emit(ctx, events.BookingEvent{
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		RoomID:     booking.RoomID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) logFailure(msg, userID, roomID string, err error) {
	appErr := apperrors.AsAppError(err)
	if appErr.StatusCode() >= 500 {
		s.cfg.Log.Error(msg, "user_id", userID, "room_id", roomID, "error", err)
		return
	}
	s.cfg.Log.Info(msg, "user_id", userID, "room_id", roomID, "reason", appErr.Message)
}
