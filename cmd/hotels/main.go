package main

import (
	enrollmentRepository "drivent/internal/enrollments/repository"
	"drivent/internal/entitlement"
	"drivent/internal/hotels/handler"
	"drivent/internal/hotels/repository"
	"drivent/internal/hotels/service"
	sessionRepository "drivent/internal/sessions/repository"
	ticketRepository "drivent/internal/tickets/repository"
	"drivent/pkg/app"
	"drivent/pkg/cache"
	"drivent/pkg/config"
)

const ServiceName = "hotels"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Hotels service")
	hotelService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewHotelHandler(hotelService, cfg.Log),
		sessionRepository.NewMongoSessionRepository(cfg),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.HotelService {
	catalogue := cache.NewRedisCache(cfg.Client.Redis, "drivent", cfg.CacheTTL)

	ticketRepo := ticketRepository.NewCachedTicketRepository(ticketRepository.NewMongoTicketRepository(cfg), catalogue, cfg.Log)
	resolver := entitlement.NewResolver(enrollmentRepository.NewMongoEnrollmentRepository(cfg), ticketRepo)

	hotelService := service.NewHotelService(
		repository.NewCachedHotelRepository(repository.NewMongoHotelRepository(cfg), catalogue, cfg.Log),
		resolver,
		cfg,
	)

	cfg.Log.Info("Hotel service initialized", "database", cfg.MongoDatabaseName)
	return hotelService
}
