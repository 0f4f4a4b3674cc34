package main

import (
	bookingshandler "roomly/internal/bookings/handler"
	bookingsrepo "roomly/internal/bookings/repository"
	bookingsservice "roomly/internal/bookings/service"
	bookingsvalidator "roomly/internal/bookings/validator"
	"roomly/internal/events"
	roomshandler "roomly/internal/rooms/handler"
	roomsrepo "roomly/internal/rooms/repository"
	roomsservice "roomly/internal/rooms/service"
	roomsvalidator "roomly/internal/rooms/validator"
	"roomly/pkg/app"
	"roomly/pkg/config"
	"roomly/pkg/contracts"
	kafka_config "roomly/pkg/kafka/config"
)

const ServiceName = "booking-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking API service")

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	publisher, err := events.NewTransitionPublisher(cfg, kafkaCfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize transition publisher", "error", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close transition publisher", "error", err)
		}
	}()

	roomHandler, bookingHandler := initHandlers(cfg, publisher)
	healthHandler := bookingshandler.NewHealthHandler(cfg.Client.Mongo.Client, cfg.Log)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, healthHandler, roomHandler, bookingHandler)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher events.TransitionPublisher) (contracts.Handler, contracts.Handler) {
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	roomService := roomsservice.NewRoomService(
		roomRepo,
		roomsvalidator.NewRoomValidator(cfg.Log),
		cfg,
	)

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsrepo.NewSlotLockRepository(cfg),
		roomRepo,
		bookingsservice.NewConflictChecker(bookingRepo, cfg),
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)
	return roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log)
}
