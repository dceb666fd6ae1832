package main

import (
	"drivent/internal/bookings/handler"
	"drivent/internal/bookings/repository"
	"drivent/internal/bookings/service"
	"drivent/internal/bookings/validator"
	enrollmentRepository "drivent/internal/enrollments/repository"
	"drivent/internal/entitlement"
	hotelRepository "drivent/internal/hotels/repository"
	sessionRepository "drivent/internal/sessions/repository"
	ticketRepository "drivent/internal/tickets/repository"
	"drivent/pkg/app"
	"drivent/pkg/cache"
	"drivent/pkg/config"
	"drivent/pkg/events"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Bookings service")
	serverApp := app.NewApplication(cfg)

	publisher, closePublisher, err := events.FromConfig(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to set up event publisher", "error", err)
	}
	serverApp.OnShutdown("event publisher", closePublisher)

	bookingService := initServices(cfg, publisher)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log),
		sessionRepository.NewMongoSessionRepository(cfg),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	catalogue := cache.NewRedisCache(cfg.Client.Redis, "drivent", cfg.CacheTTL)

	hotelRepo := hotelRepository.NewCachedHotelRepository(hotelRepository.NewMongoHotelRepository(cfg), catalogue, cfg.Log)
	ticketRepo := ticketRepository.NewCachedTicketRepository(ticketRepository.NewMongoTicketRepository(cfg), catalogue, cfg.Log)
	resolver := entitlement.NewResolver(enrollmentRepository.NewMongoEnrollmentRepository(cfg), ticketRepo)

	bookingService := service.NewBookingService(
		repository.NewMongoBookingRepository(cfg),
		repository.NewRoomLockRepository(cfg),
		hotelRepo,
		resolver,
		validator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
