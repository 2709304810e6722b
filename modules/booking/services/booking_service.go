package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/campuskit/bookingd/modules/booking/domain/aggregates/reservation"
	"github.com/campuskit/bookingd/modules/booking/domain/events"
	"github.com/campuskit/bookingd/modules/booking/domain/scheduling"
	"github.com/campuskit/bookingd/pkg/composables"
	"github.com/campuskit/bookingd/pkg/concurrency"
	"github.com/campuskit/bookingd/pkg/configuration"
	"github.com/campuskit/bookingd/pkg/eventbus"
	"github.com/campuskit/bookingd/pkg/metrics"
	"github.com/campuskit/bookingd/pkg/serrors"
)

// ListEntry is a reservation as the listing path returns it. The aging fields
// are present only for pending reservations; they are derived from the
// caller's current time, never stored.
type ListEntry struct {
	Reservation       reservation.Reservation
	EffectivePriority *int
	WaitingHours      *float64
}

// BookingService arbitrates concurrent reservation requests. Creation passes
// three independent safeguards in order: the admission limiter (bounded
// concurrency, fail-fast), the per-room lock (serializes same-room attempts),
// and the serializable store transaction (the actual enforcement point for
// overlap-freedom, even against writers that bypass this process).
type BookingService struct {
	repo      reservation.Repository
	limiter   *concurrency.Limiter
	roomLocks *concurrency.KeyedMutex
	ledger    *concurrency.AccessGate
	publisher eventbus.EventBus
	log       *logrus.Entry
	opts      configuration.BookingOptions

	now  func() time.Time
	inTx func(context.Context, func(context.Context) error) error
}

// NewBookingService builds the service with its concurrency controls sized
// from opts. Contexts passed to Create and Decide must carry the store pool
// (composables.WithPool); each call opens its own transaction on it.
func NewBookingService(
	repo reservation.Repository,
	publisher eventbus.EventBus,
	log *logrus.Logger,
	opts configuration.BookingOptions,
) *BookingService {
	return &BookingService{
		repo:      repo,
		limiter:   concurrency.NewLimiter(opts.AdmissionCapacity),
		roomLocks: concurrency.NewKeyedMutex(),
		ledger:    concurrency.NewAccessGate(),
		publisher: publisher,
		log:       log.WithField("component", "booking"),
		opts:      opts,
		now:       time.Now,
		inTx:      composables.InSerializableTx,
	}
}

// Create admits, locks, and atomically checks-then-inserts a reservation.
// The admission slot and the room lock are both released on every exit path.
func (s *BookingService) Create(ctx context.Context, dto *reservation.CreateDTO) (reservation.Reservation, error) {
	if dto == nil {
		return reservation.Reservation{}, gerrors.Wrap(serrors.ErrValidation, "missing dto")
	}
	if fieldErrors, ok := dto.Ok(); !ok {
		return reservation.Reservation{}, fmt.Errorf("%w: %v", serrors.ErrValidation, fieldErrors)
	}

	if !s.limiter.TryEnter() {
		metrics.AdmissionRejected.Inc()
		return reservation.Reservation{}, serrors.ErrServiceBusy
	}
	defer s.limiter.Exit()
	metrics.AdmissionInFlight.Inc()
	defer metrics.AdmissionInFlight.Dec()

	entity := dto.ToEntity()

	// Bounded wait: a caller stuck on a hot room must not pin its admission
	// slot forever.
	lockCtx, cancel := context.WithTimeout(ctx, s.opts.LockTimeout)
	defer cancel()
	release, err := s.roomLocks.Acquire(lockCtx, entity.RoomID())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return reservation.Reservation{}, gerrors.Wrap(serrors.ErrStoreUnavailable, "room lock wait exhausted")
		}
		return reservation.Reservation{}, err
	}
	defer release()

	var created reservation.Reservation
	err = s.withTxRetry(ctx, func(txCtx context.Context) error {
		count, err := s.repo.CountApprovedOverlapping(txCtx, entity.RoomID(), entity.Interval(), 0)
		if err != nil {
			return err
		}
		if count > 0 {
			return serrors.ErrConflict
		}
		created, err = s.repo.Create(txCtx, entity)
		return err
	})
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			metrics.BookingConflicts.Inc()
			s.log.WithField("room", entity.RoomID()).Debug("reservation conflict")
			return reservation.Reservation{}, serrors.ErrConflict
		}
		return reservation.Reservation{}, err
	}

	metrics.BookingsCreated.Inc()
	s.log.WithFields(logrus.Fields{
		"id":   created.ID(),
		"room": created.RoomID(),
	}).Info("reservation created")
	s.publisher.Publish(events.NewReservationCreated(created, s.now()))
	return created, nil
}

// Decide records an approve/reject outcome for a pending reservation.
// Approval re-checks overlap against approved reservations inside the same
// transaction, so an operator cannot approve two conflicting pending requests.
func (s *BookingService) Decide(ctx context.Context, id int64, outcome reservation.Status) (reservation.Reservation, error) {
	if outcome != reservation.StatusApproved && outcome != reservation.StatusRejected {
		return reservation.Reservation{}, gerrors.Wrapf(serrors.ErrValidation, "outcome %q", outcome)
	}

	var decided reservation.Reservation
	err := s.withTxRetry(ctx, func(txCtx context.Context) error {
		current, err := s.repo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if !current.IsPending() {
			return reservation.ErrAlreadyDecided
		}

		if outcome == reservation.StatusApproved {
			broken, err := s.repo.HasApprovedOverlapPairs(txCtx, current.RoomID())
			if err != nil {
				return err
			}
			if broken {
				return serrors.ErrInvariantViolation
			}

			count, err := s.repo.CountApprovedOverlapping(txCtx, current.RoomID(), current.Interval(), id)
			if err != nil {
				return err
			}
			if count > 0 {
				return serrors.ErrConflict
			}
		}

		decided, err = s.repo.UpdateStatus(txCtx, id, outcome, s.now())
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrNotFound):
			return reservation.Reservation{}, serrors.ErrNotFound
		case errors.Is(err, reservation.ErrAlreadyDecided):
			return reservation.Reservation{}, serrors.ErrAlreadyDecided
		case errors.Is(err, serrors.ErrInvariantViolation):
			s.log.WithField("id", id).Error("approved reservations already overlap; refusing to decide")
			return reservation.Reservation{}, err
		default:
			return reservation.Reservation{}, err
		}
	}

	metrics.DecisionsRecorded.WithLabelValues(string(outcome)).Inc()
	s.log.WithFields(logrus.Fields{
		"id":      decided.ID(),
		"room":    decided.RoomID(),
		"outcome": string(outcome),
	}).Info("reservation decided")
	s.publisher.Publish(events.NewReservationDecided(decided, outcome, s.now()))
	return decided, nil
}

// List reads reservations under the shared ledger gate. When filtering for
// pending reservations the result is ordered by aging-adjusted priority and
// annotated with the effective rank and waiting time.
func (s *BookingService) List(ctx context.Context, params *reservation.FindParams) ([]ListEntry, error) {
	s.ledger.AcquireShared()
	defer s.ledger.ReleaseShared()

	rows, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pendingView := params != nil && params.Status != nil && *params.Status == reservation.StatusPending
	if pendingView {
		scheduling.SortPending(rows, now)
	}

	entries := make([]ListEntry, 0, len(rows))
	for _, r := range rows {
		entry := ListEntry{Reservation: r}
		if r.IsPending() {
			rank := scheduling.EffectiveRank(r.Priority(), r.CreatedAt(), now)
			waiting := scheduling.WaitingHours(r.CreatedAt(), now)
			entry.EffectivePriority = &rank
			entry.WaitingHours = &waiting
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Availability reports whether the room is free of approved reservations for
// the whole interval.
func (s *BookingService) Availability(ctx context.Context, roomID string, start, end time.Time) (bool, error) {
	iv, ok := reservation.NewInterval(start, end)
	if !ok {
		return false, gerrors.Wrap(serrors.ErrValidation, "interval")
	}

	s.ledger.AcquireShared()
	defer s.ledger.ReleaseShared()

	count, err := s.repo.CountApprovedOverlapping(ctx, roomID, iv, 0)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// VerifyIntegrity audits the room's approved reservations for overlap while
// holding the ledger gate exclusively, so in-flight listings observe either
// the state before or after the audit, never interleaved with it. A breach is
// reported, never repaired here.
func (s *BookingService) VerifyIntegrity(ctx context.Context, roomID string) error {
	s.ledger.AcquireExclusive()
	defer s.ledger.ReleaseExclusive()

	broken, err := s.repo.HasApprovedOverlapPairs(ctx, roomID)
	if err != nil {
		return err
	}
	if broken {
		s.log.WithField("room", roomID).Error("approved reservations overlap")
		return gerrors.Wrapf(serrors.ErrInvariantViolation, "room %s", roomID)
	}
	return nil
}

// withTxRetry runs fn inside a serializable transaction, retrying a bounded
// number of times on transient store contention.
func (s *BookingService) withTxRetry(ctx context.Context, fn func(context.Context) error) error {
	attempt := func() error {
		err := s.inTx(ctx, fn)
		if err == nil {
			return nil
		}
		if isTransientStoreErr(err) {
			metrics.TxRetries.Inc()
			s.log.WithError(err).Warn("transient store contention, retrying")
			return err
		}
		return backoff.Permanent(err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.TxRetryDelay), uint64(s.opts.TxMaxRetries)),
		ctx,
	)
	err := backoff.Retry(attempt, policy)
	if err == nil {
		return nil
	}
	if isTransientStoreErr(err) {
		// Retry ceiling reached; surface as transient so the caller backs off.
		return gerrors.Wrap(serrors.ErrStoreUnavailable, "retries exhausted")
	}
	return err
}

// isTransientStoreErr matches the postgres failures worth retrying:
// serialization aborts, deadlocks, and lock timeouts.
func isTransientStoreErr(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
