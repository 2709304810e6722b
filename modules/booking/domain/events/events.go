package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuskit/bookingd/modules/booking/domain/aggregates/reservation"
)

// ReservationCreated is published after a create-reservation transaction
// commits. Subscribers (notification, UI refresh) run outside the room lock.
type ReservationCreated struct {
	EventID     uuid.UUID
	Reservation reservation.Reservation
	OccurredAt  time.Time
}

func NewReservationCreated(r reservation.Reservation, at time.Time) *ReservationCreated {
	return &ReservationCreated{EventID: uuid.New(), Reservation: r, OccurredAt: at}
}

// ReservationDecided is published after an approve/reject decision commits.
type ReservationDecided struct {
	EventID     uuid.UUID
	Reservation reservation.Reservation
	Outcome     reservation.Status
	OccurredAt  time.Time
}

func NewReservationDecided(r reservation.Reservation, outcome reservation.Status, at time.Time) *ReservationDecided {
	return &ReservationDecided{EventID: uuid.New(), Reservation: r, Outcome: outcome, OccurredAt: at}
}
