package model

import "time"

type Hotel struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Image     string    `json:"image" bson:"image"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
	Rooms     []*Room   `json:"Rooms,omitempty" bson:"-"`
}

type Room struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Capacity  int       `json:"capacity" bson:"capacity"`
	HotelID   string    `json:"hotelId" bson:"hotelId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
