package reservation

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("reservation not found")
	ErrAlreadyDecided = errors.New("reservation already decided")
)

type FindParams struct {
	RequesterID string
	Status      *Status
	Limit       int
	Offset      int
}

type Repository interface {
	// Create inserts r as a new pending reservation and returns it with its
	// store-assigned identifier and creation timestamp.
	Create(ctx context.Context, r Reservation) (Reservation, error)

	GetByID(ctx context.Context, id int64) (Reservation, error)

	List(ctx context.Context, params *FindParams) ([]Reservation, error)

	// CountApprovedOverlapping counts approved reservations on roomID whose
	// interval intersects iv. excludeID skips one reservation (used when
	// re-checking at approval time); pass 0 to check them all.
	CountApprovedOverlapping(ctx context.Context, roomID string, iv Interval, excludeID int64) (int64, error)

	// HasApprovedOverlapPairs reports whether any two approved reservations
	// on roomID overlap each other. A true result means the overlap-freedom
	// invariant is already broken in the ledger.
	HasApprovedOverlapPairs(ctx context.Context, roomID string) (bool, error)

	// UpdateStatus flips a pending reservation to status, stamping the
	// matching decision timestamp. Returns ErrAlreadyDecided if the
	// reservation is no longer pending, ErrNotFound if it does not exist.
	UpdateStatus(ctx context.Context, id int64, status Status, decidedAt time.Time) (Reservation, error)
}
