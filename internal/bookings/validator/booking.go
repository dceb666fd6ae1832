package validator

import (
	"drivent/pkg/logger"
	"drivent/pkg/model"
	"drivent/pkg/validation"
)

type BookingValidator struct {
	*validation.Validator[model.BookingRequest]
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Debug("Booking validator ready")
	return &BookingValidator{Validator: validation.New[model.BookingRequest]()}
}
