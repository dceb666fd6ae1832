package main

import (
	enrollmentRepository "drivent/internal/enrollments/repository"
	sessionRepository "drivent/internal/sessions/repository"
	"drivent/internal/tickets/handler"
	"drivent/internal/tickets/repository"
	"drivent/internal/tickets/service"
	"drivent/internal/tickets/validator"
	"drivent/pkg/app"
	"drivent/pkg/cache"
	"drivent/pkg/config"
	"drivent/pkg/events"
)

const ServiceName = "tickets"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Tickets service")
	serverApp := app.NewApplication(cfg)

	publisher, closePublisher, err := events.FromConfig(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to set up event publisher", "error", err)
	}
	serverApp.OnShutdown("event publisher", closePublisher)

	ticketService := initServices(cfg, publisher)
	serverApp.SetApp(
		handler.NewTicketHandler(ticketService, cfg.Log),
		sessionRepository.NewMongoSessionRepository(cfg),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.TicketService {
	catalogue := cache.NewRedisCache(cfg.Client.Redis, "drivent", cfg.CacheTTL)

	ticketService := service.NewTicketService(
		repository.NewCachedTicketRepository(repository.NewMongoTicketRepository(cfg), catalogue, cfg.Log),
		enrollmentRepository.NewMongoEnrollmentRepository(cfg),
		validator.NewTicketValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Ticket service initialized", "database", cfg.MongoDatabaseName)
	return ticketService
}
