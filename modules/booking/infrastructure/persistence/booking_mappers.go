package persistence

import (
	"github.com/campuskit/bookingd/modules/booking/domain/aggregates/reservation"
	"github.com/campuskit/bookingd/modules/booking/infrastructure/persistence/models"
)

func toDomainReservation(row *models.Reservation) reservation.Reservation {
	interval, _ := reservation.NewInterval(row.StartTime, row.EndTime)
	priority, _ := reservation.ParsePriority(row.Priority)
	return reservation.Hydrate(
		row.ID,
		row.Room,
		row.Requester,
		row.Subject,
		row.Purpose,
		row.Notes,
		interval,
		priority,
		reservation.Status(row.Status),
		row.CreatedAt,
		row.ApprovedAt,
		row.RejectedAt,
	)
}

func toDBReservation(r reservation.Reservation) *models.Reservation {
	return &models.Reservation{
		ID:         r.ID(),
		Room:       r.RoomID(),
		Requester:  r.RequesterID(),
		Subject:    r.Subject(),
		Purpose:    r.Purpose(),
		Notes:      r.Notes(),
		StartTime:  r.Interval().Start(),
		EndTime:    r.Interval().End(),
		Priority:   r.Priority().String(),
		Status:     string(r.Status()),
		CreatedAt:  r.CreatedAt(),
		ApprovedAt: r.ApprovedAt(),
		RejectedAt: r.RejectedAt(),
	}
}
