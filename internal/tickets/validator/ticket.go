package validator

import (
	"drivent/pkg/logger"
	"drivent/pkg/model"
	"drivent/pkg/validation"
)

type TicketValidator struct {
	*validation.Validator[model.TicketRequest]
}

func NewTicketValidator(log *logger.Logger) *TicketValidator {
	log.Debug("Ticket validator ready")
	return &TicketValidator{Validator: validation.New[model.TicketRequest]()}
}
