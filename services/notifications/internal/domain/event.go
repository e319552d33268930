package domain

import "encoding/json"

// BookingEvent is the payload published on the booking.events channel by the
// booking-management service.
//
//	{
//	  "type": "booking.created|accepted|confirmed|completed|canceled",
//	  "id": <booking_id>,
//	  "actor_id": <user_id>,
//	  "customer_id": <id>,
//	  "provider_id": <id>,
//	  "status": "PENDING|ACCEPTED|...|CANCELED",
//	  "title": "string",
//	  "body": "string",
//	  "meta": { ... }
//	}
//
// Both parties of the booking get a push.
type BookingEvent struct {
	Type       string         `json:"type"`
	ID         int64          `json:"id"`
	ActorID    int64          `json:"actor_id,omitempty"`
	CustomerID int64          `json:"customer_id"`
	ProviderID int64          `json:"provider_id"`
	Status     string         `json:"status"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// Targets returns the non-zero parties of the booking.
func (e BookingEvent) Targets() []int64 {
	var out []int64
	for _, id := range []int64{e.CustomerID, e.ProviderID} {
		if id != 0 {
			out = append(out, id)
		}
	}
	return out
}

func ParseBookingEvent(payload []byte) (BookingEvent, error) {
	var e BookingEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}
