//go:build integration

package bookings

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"drivent/pkg/client"
	"drivent/pkg/model"
	"drivent/test/integration/testutil"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*testutil.TestEnv, *testutil.MongoHelper) {
	t.Helper()
	env := testutil.NewTestEnv()
	return env, env.Setup(t, env.BookingsURL)
}

func clientFor(env *testutil.TestEnv, user *testutil.User) *client.DriventClient {
	return client.NewDriventClient(env.BookingsURL, user.Token)
}

func assertStatus(t *testing.T, resp *client.Response, err error, want int) {
	t.Helper()
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("status = %d, want %d, body: %s", resp.StatusCode, want, resp.Body)
	}
}

func createBooking(t *testing.T, c *client.DriventClient, roomID string) string {
	t.Helper()
	resp, err := c.CreateBooking(context.Background(), roomID)
	assertStatus(t, resp, err, http.StatusOK)

	var body model.BookingResponse
	if err := resp.DecodeJSON(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.BookingID == "" {
		t.Fatal("expected bookingId in response")
	}
	return body.BookingID
}

func TestBooking_RequiresToken(t *testing.T) {
	env, _ := setup(t)

	resp, err := client.NewHttpClient(env.BookingsURL).GET(context.Background(), "/booking")
	assertStatus(t, resp, err, http.StatusUnauthorized)
}

func TestBooking_UnknownSessionIsRejected(t *testing.T) {
	env, mongo := setup(t)
	user := mongo.NewUser(t, env.JWTSecret)
	mongo.CleanCollection(t, testutil.SessionsCollection)

	resp, err := clientFor(env, user).GetBooking(context.Background())
	assertStatus(t, resp, err, http.StatusUnauthorized)
}

func TestGetBooking(t *testing.T) {
	env, mongo := setup(t)
	ctx := context.Background()

	t.Run("no booking yet", func(t *testing.T) {
		user := mongo.EligibleUser(t, env.JWTSecret)
		resp, err := clientFor(env, user).GetBooking(ctx)
		assertStatus(t, resp, err, http.StatusNotFound)
	})

	t.Run("returns booking with room", func(t *testing.T) {
		user := mongo.EligibleUser(t, env.JWTSecret)
		roomID := mongo.NewRoom(t, mongo.NewHotel(t, "Driven Resort"), "101", 3)
		c := clientFor(env, user)
		bookingID := createBooking(t, c, roomID)

		resp, err := c.GetBooking(ctx)
		assertStatus(t, resp, err, http.StatusOK)

		var got model.BookingWithRoom
		if err := resp.DecodeJSON(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != bookingID {
			t.Errorf("id = %s, want %s", got.ID, bookingID)
		}
		if got.Room == nil || got.Room.ID != roomID || got.Room.Capacity != 3 {
			t.Errorf("unexpected Room %+v", got.Room)
		}
	})
}

func TestCreateBooking_Failures(t *testing.T) {
	env, mongo := setup(t)
	ctx := context.Background()
	hotelID := mongo.NewHotel(t, "Driven Resort")

	tests := []struct {
		name   string
		user   func(t *testing.T) *testutil.User
		roomID func(t *testing.T) string
		want   int
	}{
		{
			name:   "invalid room id",
			user:   func(t *testing.T) *testutil.User { return mongo.EligibleUser(t, env.JWTSecret) },
			roomID: func(t *testing.T) string { return "not-an-id" },
			want:   http.StatusBadRequest,
		},
		{
			name:   "room does not exist",
			user:   func(t *testing.T) *testutil.User { return mongo.EligibleUser(t, env.JWTSecret) },
			roomID: func(t *testing.T) string { return primitive.NewObjectID().Hex() },
			want:   http.StatusNotFound,
		},
		{
			name:   "no enrollment",
			user:   func(t *testing.T) *testutil.User { return mongo.NewUser(t, env.JWTSecret) },
			roomID: func(t *testing.T) string { return mongo.NewRoom(t, hotelID, "201", 2) },
			want:   http.StatusNotFound,
		},
		{
			name: "ticket not paid",
			user: func(t *testing.T) *testutil.User {
				user := mongo.NewUser(t, env.JWTSecret)
				enrollmentID := mongo.NewEnrollment(t, user)
				mongo.NewTicket(t, enrollmentID, testutil.NewTicketTypeBuilder().Insert(t, mongo), model.TicketStatusReserved)
				return user
			},
			roomID: func(t *testing.T) string { return mongo.NewRoom(t, hotelID, "202", 2) },
			want:   http.StatusForbidden,
		},
		{
			name: "remote ticket",
			user: func(t *testing.T) *testutil.User {
				user := mongo.NewUser(t, env.JWTSecret)
				enrollmentID := mongo.NewEnrollment(t, user)
				mongo.NewTicket(t, enrollmentID, testutil.NewTicketTypeBuilder().Remote().Insert(t, mongo), model.TicketStatusPaid)
				return user
			},
			roomID: func(t *testing.T) string { return mongo.NewRoom(t, hotelID, "203", 2) },
			want:   http.StatusForbidden,
		},
		{
			name: "ticket without hotel",
			user: func(t *testing.T) *testutil.User {
				user := mongo.NewUser(t, env.JWTSecret)
				enrollmentID := mongo.NewEnrollment(t, user)
				mongo.NewTicket(t, enrollmentID, testutil.NewTicketTypeBuilder().WithoutHotel().Insert(t, mongo), model.TicketStatusPaid)
				return user
			},
			roomID: func(t *testing.T) string { return mongo.NewRoom(t, hotelID, "204", 2) },
			want:   http.StatusForbidden,
		},
		{
			name: "room full",
			user: func(t *testing.T) *testutil.User { return mongo.EligibleUser(t, env.JWTSecret) },
			roomID: func(t *testing.T) string {
				roomID := mongo.NewRoom(t, hotelID, "205", 1)
				createBooking(t, clientFor(env, mongo.EligibleUser(t, env.JWTSecret)), roomID)
				return roomID
			},
			want: http.StatusForbidden,
		},
		{
			name:   "zero capacity room",
			user:   func(t *testing.T) *testutil.User { return mongo.EligibleUser(t, env.JWTSecret) },
			roomID: func(t *testing.T) string { return mongo.NewRoom(t, hotelID, "206", 0) },
			want:   http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := tt.user(t)
			resp, err := clientFor(env, user).CreateBooking(ctx, tt.roomID(t))
			assertStatus(t, resp, err, tt.want)
		})
	}
}

func TestCreateBooking_SecondBookingForSameUserFails(t *testing.T) {
	env, mongo := setup(t)
	user := mongo.EligibleUser(t, env.JWTSecret)
	hotelID := mongo.NewHotel(t, "Driven Resort")
	c := clientFor(env, user)

	createBooking(t, c, mongo.NewRoom(t, hotelID, "301", 2))

	resp, err := c.CreateBooking(context.Background(), mongo.NewRoom(t, hotelID, "302", 2))
	assertStatus(t, resp, err, http.StatusForbidden)
	if n := mongo.CountDocuments(t, testutil.BookingsCollection, bson.M{"userId": user.ID}); n != 1 {
		t.Errorf("user has %d bookings, want 1", n)
	}
}

func TestCreateBooking_ConcurrentRequestsNeverOverfillRoom(t *testing.T) {
	env, mongo := setup(t)
	roomID := mongo.NewRoom(t, mongo.NewHotel(t, "Driven Resort"), "401", 2)

	const attempts = 10
	users := make([]*testutil.User, attempts)
	for i := range users {
		users[i] = mongo.EligibleUser(t, env.JWTSecret)
	}

	var wg sync.WaitGroup
	for _, user := range users {
		wg.Add(1)
		go func(user *testutil.User) {
			defer wg.Done()
			_, _ = clientFor(env, user).CreateBooking(context.Background(), roomID)
		}(user)
	}
	wg.Wait()

	if n := mongo.CountDocuments(t, testutil.BookingsCollection, bson.M{"roomId": roomID}); n > 2 {
		t.Fatalf("room with capacity 2 holds %d bookings", n)
	}
}

func TestUpdateBooking(t *testing.T) {
	env, mongo := setup(t)
	ctx := context.Background()
	hotelID := mongo.NewHotel(t, "Driven Resort")

	t.Run("moves booking to another room", func(t *testing.T) {
		user := mongo.EligibleUser(t, env.JWTSecret)
		c := clientFor(env, user)
		bookingID := createBooking(t, c, mongo.NewRoom(t, hotelID, "501", 2))
		target := mongo.NewRoom(t, hotelID, "502", 2)

		resp, err := c.UpdateBooking(ctx, bookingID, target)
		assertStatus(t, resp, err, http.StatusOK)

		var body model.BookingResponse
		if err := resp.DecodeJSON(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.BookingID != bookingID {
			t.Errorf("bookingId = %s, want %s", body.BookingID, bookingID)
		}
		if n := mongo.CountDocuments(t, testutil.BookingsCollection, bson.M{"roomId": target}); n != 1 {
			t.Errorf("target room has %d bookings, want 1", n)
		}
	})

	t.Run("user without booking", func(t *testing.T) {
		user := mongo.EligibleUser(t, env.JWTSecret)
		resp, err := clientFor(env, user).UpdateBooking(ctx, primitive.NewObjectID().Hex(), mongo.NewRoom(t, hotelID, "503", 2))
		assertStatus(t, resp, err, http.StatusForbidden)
	})

	t.Run("booking id belongs to someone else", func(t *testing.T) {
		owner := mongo.EligibleUser(t, env.JWTSecret)
		othersBooking := createBooking(t, clientFor(env, owner), mongo.NewRoom(t, hotelID, "504", 2))

		user := mongo.EligibleUser(t, env.JWTSecret)
		c := clientFor(env, user)
		createBooking(t, c, mongo.NewRoom(t, hotelID, "505", 2))

		resp, err := c.UpdateBooking(ctx, othersBooking, mongo.NewRoom(t, hotelID, "506", 2))
		assertStatus(t, resp, err, http.StatusForbidden)
	})

	t.Run("target room full", func(t *testing.T) {
		full := mongo.NewRoom(t, hotelID, "507", 1)
		createBooking(t, clientFor(env, mongo.EligibleUser(t, env.JWTSecret)), full)

		user := mongo.EligibleUser(t, env.JWTSecret)
		c := clientFor(env, user)
		bookingID := createBooking(t, c, mongo.NewRoom(t, hotelID, "508", 2))

		resp, err := c.UpdateBooking(ctx, bookingID, full)
		assertStatus(t, resp, err, http.StatusForbidden)
	})

	t.Run("target room missing", func(t *testing.T) {
		user := mongo.EligibleUser(t, env.JWTSecret)
		c := clientFor(env, user)
		bookingID := createBooking(t, c, mongo.NewRoom(t, hotelID, "509", 2))

		resp, err := c.UpdateBooking(ctx, bookingID, primitive.NewObjectID().Hex())
		assertStatus(t, resp, err, http.StatusNotFound)
	})
}
