package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	ticketserrors "drivent/internal/tickets/errors"
	"drivent/pkg/config"
	mongodb "drivent/pkg/db/mongo"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	TicketsCollection     = "Tickets"
	TicketTypesCollection = "TicketTypes"
)

type TicketRepository interface {
	ListTypes(ctx context.Context) ([]*model.TicketType, error)
	FindTypeByID(ctx context.Context, id string) (*model.TicketType, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID string) (*model.Ticket, error)
	Create(ctx context.Context, ticket *model.Ticket) error
	MarkPaid(ctx context.Context, id string) (*model.Ticket, error)
}

type mongoTicketRepository struct {
	cfg     *config.Config
	tickets *mongo.Collection
	types   *mongo.Collection
}

func NewMongoTicketRepository(cfg *config.Config) TicketRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTicketRepository{
		cfg:     cfg,
		tickets: db.Collection(TicketsCollection),
		types:   db.Collection(TicketTypesCollection),
	}
}

func (r *mongoTicketRepository) ListTypes(ctx context.Context) ([]*model.TicketType, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.types.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find ticket types: %w", err)
	}
	defer cursor.Close(ctx)

	types := []*model.TicketType{}
	if err = cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode ticket types: %w", err)
	}

	return types, nil
}

func (r *mongoTicketRepository) FindTypeByID(ctx context.Context, id string) (*model.TicketType, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ticketserrors.ErrInvalidID, id)
	}

	var ticketType model.TicketType
	if err := r.types.FindOne(ctx, bson.M{"_id": objectID}).Decode(&ticketType); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticketserrors.ErrTypeNotFound
		}
		return nil, fmt.Errorf("failed to find ticket type: %w", err)
	}

	return &ticketType, nil
}

func (r *mongoTicketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID string) (*model.Ticket, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var ticket model.Ticket
	if err := r.tickets.FindOne(ctx, bson.M{"enrollmentId": enrollmentID}).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticketserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return &ticket, nil
}

func (r *mongoTicketRepository) Create(ctx context.Context, ticket *model.Ticket) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	result, err := r.tickets.InsertOne(ctx, ticket)
	if err != nil {
		if mongodb.IsDuplicateKey(err) {
			return ticketserrors.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		ticket.ID = oid.Hex()
	}
	return nil
}

// MarkPaid moves a ticket to PAID and returns the updated document. Marking an
// already paid ticket is a no-op that still returns the ticket.
func (r *mongoTicketRepository) MarkPaid(ctx context.Context, id string) (*model.Ticket, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ticketserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":    model.TicketStatusPaid,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ticket model.Ticket
	if err := r.tickets.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&ticket); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ticketserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to mark ticket paid: %w", err)
	}

	return &ticket, nil
}
