package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"drivent/pkg/auth"
	"drivent/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var cpfSeq atomic.Int64

// User is a seeded caller: a stored session plus the token that matches it.
type User struct {
	ID    string
	Token string
}

func (m *MongoHelper) NewUser(t *testing.T, secret string) *User {
	t.Helper()

	userID := primitive.NewObjectID().Hex()
	token, err := auth.NewTokenManager(secret, time.Hour).Issue(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	m.insert(t, SessionsCollection, bson.M{
		"_id":       primitive.NewObjectID(),
		"userId":    userID,
		"token":     token,
		"createdAt": time.Now(),
	})
	return &User{ID: userID, Token: token}
}

func (m *MongoHelper) NewEnrollment(t *testing.T, user *User) string {
	t.Helper()

	now := time.Now()
	return m.insert(t, EnrollmentsCollection, bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      "Test Attendee",
		"cpf":       fmt.Sprintf("%011d", cpfSeq.Add(1)),
		"birthday":  now.AddDate(-30, 0, 0),
		"phone":     "(21) 98999-9999",
		"userId":    user.ID,
		"createdAt": now,
		"updatedAt": now,
	})
}

type TicketTypeBuilder struct {
	doc bson.M
}

// NewTicketTypeBuilder defaults to an in-person ticket with hotel, the only kind that reaches rooms.
func NewTicketTypeBuilder() *TicketTypeBuilder {
	now := time.Now()
	return &TicketTypeBuilder{doc: bson.M{
		"name":          "Presencial + Hotel",
		"price":         600,
		"isRemote":      false,
		"includesHotel": true,
		"createdAt":     now,
		"updatedAt":     now,
	}}
}

func (b *TicketTypeBuilder) Remote() *TicketTypeBuilder {
	b.doc["name"] = "Online"
	b.doc["isRemote"] = true
	b.doc["includesHotel"] = false
	return b
}

func (b *TicketTypeBuilder) WithoutHotel() *TicketTypeBuilder {
	b.doc["name"] = "Presencial"
	b.doc["includesHotel"] = false
	return b
}

func (b *TicketTypeBuilder) Insert(t *testing.T, m *MongoHelper) string {
	t.Helper()
	b.doc["_id"] = primitive.NewObjectID()
	return m.insert(t, TicketTypesCollection, b.doc)
}

func (m *MongoHelper) NewTicket(t *testing.T, enrollmentID, ticketTypeID, status string) string {
	t.Helper()

	now := time.Now()
	return m.insert(t, TicketsCollection, bson.M{
		"_id":          primitive.NewObjectID(),
		"enrollmentId": enrollmentID,
		"ticketTypeId": ticketTypeID,
		"status":       status,
		"createdAt":    now,
		"updatedAt":    now,
	})
}

func (m *MongoHelper) NewHotel(t *testing.T, name string) string {
	t.Helper()

	now := time.Now()
	return m.insert(t, HotelsCollection, bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      name,
		"image":     "https://example.com/hotel.png",
		"createdAt": now,
		"updatedAt": now,
	})
}

func (m *MongoHelper) NewRoom(t *testing.T, hotelID, name string, capacity int) string {
	t.Helper()

	now := time.Now()
	return m.insert(t, RoomsCollection, bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      name,
		"capacity":  capacity,
		"hotelId":   hotelID,
		"createdAt": now,
		"updatedAt": now,
	})
}

// EligibleUser seeds a user whose paid, in-person, hotel-inclusive ticket passes every access rule.
func (m *MongoHelper) EligibleUser(t *testing.T, secret string) *User {
	t.Helper()

	user := m.NewUser(t, secret)
	enrollmentID := m.NewEnrollment(t, user)
	m.NewTicket(t, enrollmentID, NewTicketTypeBuilder().Insert(t, m), model.TicketStatusPaid)
	return user
}
