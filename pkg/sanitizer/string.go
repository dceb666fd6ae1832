package sanitizer

import (
	"strings"
	"unicode"

	"drivent/pkg/model"
)

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeObjectID trims surrounding whitespace and lowercases hex ids.
func NormalizeObjectID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func SanitizeBookingRequest(req *model.BookingRequest) {
	if req == nil {
		return
	}
	req.RoomID = NormalizeObjectID(req.RoomID)
}

func SanitizeTicketRequest(req *model.TicketRequest) {
	if req == nil {
		return
	}
	req.TicketTypeID = NormalizeObjectID(req.TicketTypeID)
}
