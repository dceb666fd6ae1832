package testutil

import (
	"context"
	"testing"
	"time"

	bookingrepo "drivent/internal/bookings/repository"
	enrollmentrepo "drivent/internal/enrollments/repository"
	hotelrepo "drivent/internal/hotels/repository"
	migrations "drivent/internal/migrations/mongo"
	sessionrepo "drivent/internal/sessions/repository"
	ticketrepo "drivent/internal/tickets/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURI     = "mongodb://localhost:27017"
	DefaultDatabaseName = "drivent"
	ConnectionTimeout   = 10 * time.Second

	opTimeout = 5 * time.Second
)

const (
	EnrollmentsCollection = enrollmentrepo.CollectionName
	SessionsCollection    = sessionrepo.CollectionName
	TicketTypesCollection = ticketrepo.TicketTypesCollection
	TicketsCollection     = ticketrepo.TicketsCollection
	HotelsCollection      = hotelrepo.HotelsCollection
	RoomsCollection       = hotelrepo.RoomsCollection
	BookingsCollection    = bookingrepo.CollectionName
	RoomLocksCollection   = bookingrepo.RoomLocksCollection
)

// MongoHelper gives tests direct access to the database the services run against.
type MongoHelper struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoHelper(t *testing.T, uri, dbName string) *MongoHelper {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), ConnectionTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to %s: %v", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping %s: %v", uri, err)
	}
	return &MongoHelper{client: client, db: client.Database(dbName)}
}

func (m *MongoHelper) Close(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := m.client.Disconnect(ctx); err != nil {
		t.Logf("mongo disconnect: %v", err)
	}
}

// CleanDatabase empties every migrated collection. Collections are kept so
// their validators and indexes still apply.
func (m *MongoHelper) CleanDatabase(t *testing.T) {
	t.Helper()
	for _, def := range migrations.Collections() {
		m.CleanCollection(t, def.Name)
	}
}

func (m *MongoHelper) CleanCollection(t *testing.T, name string) {
	t.Helper()
	m.with(t, func(ctx context.Context) error {
		_, err := m.db.Collection(name).DeleteMany(ctx, bson.D{})
		return err
	}, "clean "+name)
}

// CountDocuments counts documents in name matching filter; nil matches everything.
func (m *MongoHelper) CountDocuments(t *testing.T, name string, filter bson.M) int64 {
	t.Helper()
	if filter == nil {
		filter = bson.M{}
	}
	var n int64
	m.with(t, func(ctx context.Context) (err error) {
		n, err = m.db.Collection(name).CountDocuments(ctx, filter)
		return err
	}, "count "+name)
	return n
}

func (m *MongoHelper) insert(t *testing.T, name string, doc bson.M) string {
	t.Helper()
	m.with(t, func(ctx context.Context) error {
		_, err := m.db.Collection(name).InsertOne(ctx, doc)
		return err
	}, "insert into "+name)
	return doc["_id"].(primitive.ObjectID).Hex()
}

func (m *MongoHelper) with(t *testing.T, op func(ctx context.Context) error, what string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := op(ctx); err != nil {
		t.Fatalf("%s: %v", what, err)
	}
}
