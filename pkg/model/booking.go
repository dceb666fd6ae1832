package model

import "time"

type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID    string    `json:"userId" bson:"userId" validate:"required,mongodb"`
	RoomID    string    `json:"roomId" bson:"roomId" validate:"required,mongodb"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// BookingWithRoom is the shape returned by GET /booking.
type BookingWithRoom struct {
	ID   string `json:"id"`
	Room *Room  `json:"Room"`
}

type BookingRequest struct {
	RoomID string `json:"roomId" validate:"required,mongodb"`
}

type BookingResponse struct {
	BookingID string `json:"bookingId"`
}
