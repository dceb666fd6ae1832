package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingrepo "drivent/internal/bookings/repository"
	enrollmentrepo "drivent/internal/enrollments/repository"
	hotelrepo "drivent/internal/hotels/repository"
	"drivent/internal/migrations/mongo/validators"
	sessionrepo "drivent/internal/sessions/repository"
	ticketrepo "drivent/internal/tickets/repository"
	"drivent/pkg/logger"
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	EnrollmentsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cpf", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	SessionsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "token", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}

	TicketsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "enrollmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ticketTypeId", Value: 1}}},
	}

	TicketTypesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}

	HotelsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	}

	RoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "hotelId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}

	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roomId", Value: 1}}},
	}

	// Expired locks are removed by the TTL monitor; acquirers also take over expired ones.
	RoomLocksIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
	}
)

func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: enrollmentrepo.CollectionName, Indexes: EnrollmentsIndexes, Validator: validators.EnrollmentValidator},
		{Name: sessionrepo.CollectionName, Indexes: SessionsIndexes, Validator: validators.SessionValidator},
		{Name: ticketrepo.TicketTypesCollection, Indexes: TicketTypesIndexes, Validator: validators.TicketTypeValidator},
		{Name: ticketrepo.TicketsCollection, Indexes: TicketsIndexes, Validator: validators.TicketValidator},
		{Name: hotelrepo.HotelsCollection, Indexes: HotelsIndexes, Validator: validators.HotelValidator},
		{Name: hotelrepo.RoomsCollection, Indexes: RoomsIndexes, Validator: validators.RoomValidator},
		{Name: bookingrepo.CollectionName, Indexes: BookingsIndexes, Validator: validators.BookingValidator},
		{Name: bookingrepo.RoomLocksCollection, Indexes: RoomLocksIndexes, Validator: validators.RoomLockValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
