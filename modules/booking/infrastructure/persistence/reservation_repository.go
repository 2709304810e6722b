package persistence

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/campuskit/bookingd/modules/booking/domain/aggregates/reservation"
	"github.com/campuskit/bookingd/modules/booking/infrastructure/persistence/models"
	"github.com/campuskit/bookingd/pkg/composables"
	"github.com/campuskit/bookingd/pkg/repo"
)

const reservationColumns = `id, room, requester, subject, purpose, notes, start_time, end_time, priority, status, created_at, approved_at, rejected_at`

type ReservationRepository struct{}

func NewReservationRepository() reservation.Repository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, entity reservation.Reservation) (reservation.Reservation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reservation.Reservation{}, err
	}

	dbRow := toDBReservation(entity)
	if dbRow.CreatedAt.IsZero() {
		dbRow.CreatedAt = time.Now()
	}

	if err := tx.QueryRow(
		ctx,
		`INSERT INTO bookings (room, requester, subject, purpose, notes, start_time, end_time, priority, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		dbRow.Room,
		dbRow.Requester,
		dbRow.Subject,
		dbRow.Purpose,
		dbRow.Notes,
		dbRow.StartTime,
		dbRow.EndTime,
		dbRow.Priority,
		dbRow.Status,
		dbRow.CreatedAt,
	).Scan(&dbRow.ID, &dbRow.CreatedAt); err != nil {
		return reservation.Reservation{}, gerrors.Wrap(err, "insert reservation")
	}

	return toDomainReservation(dbRow), nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (reservation.Reservation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reservation.Reservation{}, err
	}

	row := tx.QueryRow(ctx, `SELECT `+reservationColumns+` FROM bookings WHERE id = $1`, id)
	entity, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrNotFound
		}
		return reservation.Reservation{}, err
	}
	return entity, nil
}

func (r *ReservationRepository) List(ctx context.Context, params *reservation.FindParams) ([]reservation.Reservation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildReservationFilters(params)
	query := `SELECT ` + reservationColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY status ASC, id DESC`
	if params != nil {
		if clause := repo.FormatLimitOffset(params.Limit, params.Offset); clause != "" {
			query += " " + clause
		}
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []reservation.Reservation
	for rows.Next() {
		entity, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ReservationRepository) CountApprovedOverlapping(ctx context.Context, roomID string, iv reservation.Interval, excludeID int64) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	// Half-open overlap test: [a, b) intersects [c, d) iff a < d and b > c.
	var count int64
	if err := tx.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE room = $1 AND status = $2
		   AND start_time < $3 AND end_time > $4
		   AND ($5 = 0 OR id <> $5)`,
		roomID,
		string(reservation.StatusApproved),
		iv.End(),
		iv.Start(),
		excludeID,
	).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "count overlapping reservations")
	}
	return count, nil
}

func (r *ReservationRepository) HasApprovedOverlapPairs(ctx context.Context, roomID string) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var found bool
	if err := tx.QueryRow(
		ctx,
		`SELECT EXISTS (
		   SELECT 1
		   FROM bookings a
		   JOIN bookings b ON a.room = b.room AND a.id < b.id
		   WHERE a.room = $1
		     AND a.status = 'approved' AND b.status = 'approved'
		     AND a.start_time < b.end_time AND a.end_time > b.start_time
		 )`,
		roomID,
	).Scan(&found); err != nil {
		return false, gerrors.Wrap(err, "check approved overlap pairs")
	}
	return found, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status reservation.Status, decidedAt time.Time) (reservation.Reservation, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return reservation.Reservation{}, err
	}

	// The status predicate makes the pending->decided transition one-shot:
	// a second decision matches zero rows.
	row := tx.QueryRow(
		ctx,
		`UPDATE bookings
		 SET status = $2,
		     approved_at = CASE WHEN $2 = 'approved' THEN $3 ELSE approved_at END,
		     rejected_at = CASE WHEN $2 = 'rejected' THEN $3 ELSE rejected_at END
		 WHERE id = $1 AND status = 'pending'
		 RETURNING `+reservationColumns,
		id,
		string(status),
		decidedAt,
	)
	entity, err := scanReservation(row)
	if err == nil {
		return entity, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return reservation.Reservation{}, gerrors.Wrap(err, "update reservation status")
	}

	// Zero rows: either the reservation is gone or it was already decided.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return reservation.Reservation{}, getErr
	}
	return reservation.Reservation{}, reservation.ErrAlreadyDecided
}

func buildReservationFilters(params *reservation.FindParams) ([]string, []any) {
	var where []string
	var args []any
	if params == nil {
		return where, args
	}
	if params.RequesterID != "" {
		args = append(args, params.RequesterID)
		where = append(where, "requester = $"+strconv.Itoa(len(args)))
	}
	if params.Status != nil {
		args = append(args, string(*params.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	return where, args
}

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var dbRow models.Reservation
	if err := row.Scan(
		&dbRow.ID,
		&dbRow.Room,
		&dbRow.Requester,
		&dbRow.Subject,
		&dbRow.Purpose,
		&dbRow.Notes,
		&dbRow.StartTime,
		&dbRow.EndTime,
		&dbRow.Priority,
		&dbRow.Status,
		&dbRow.CreatedAt,
		&dbRow.ApprovedAt,
		&dbRow.RejectedAt,
	); err != nil {
		return reservation.Reservation{}, err
	}
	return toDomainReservation(&dbRow), nil
}
