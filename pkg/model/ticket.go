package model

import "time"

const (
	TicketStatusReserved = "RESERVED"
	TicketStatusPaid     = "PAID"
)

type TicketType struct {
	ID            string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string    `json:"name" bson:"name"`
	Price         int       `json:"price" bson:"price"`
	IsRemote      bool      `json:"isRemote" bson:"isRemote"`
	IncludesHotel bool      `json:"includesHotel" bson:"includesHotel"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Ticket struct {
	ID           string      `json:"id,omitempty" bson:"_id,omitempty"`
	TicketTypeID string      `json:"ticketTypeId" bson:"ticketTypeId"`
	EnrollmentID string      `json:"enrollmentId" bson:"enrollmentId"`
	Status       string      `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
	TicketType   *TicketType `json:"TicketType,omitempty" bson:"-"`
}

func (t *Ticket) IsPaid() bool {
	return t.Status == TicketStatusPaid
}

type TicketRequest struct {
	TicketTypeID string `json:"ticketTypeId" validate:"required,mongodb"`
}
