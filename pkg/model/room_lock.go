package model

import "time"

// RoomLock is an advisory lock document held while a booking is written into a room.
type RoomLock struct {
	ID        string    `bson:"_id" json:"id"`
	Owner     string    `bson:"owner" json:"owner"` // per-acquire nonce
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
