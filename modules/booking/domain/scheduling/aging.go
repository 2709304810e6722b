// Package scheduling orders pending reservations by an aging-adjusted
// priority so that long waiters cannot be starved by a stream of newer,
// more urgent requests.
package scheduling

import (
	"sort"
	"time"

	"github.com/campuskit/bookingd/modules/booking/domain/aggregates/reservation"
)

// MinRank is the floor of the effective rank; aging can never push a request
// past the urgency of a fresh urgent one.
const MinRank = 1

// agingStep is how long a request must wait for its rank to improve by one.
const agingStep = 24 * time.Hour

// EffectiveRank derives the scheduling rank of a pending request from its
// declared priority and how long it has been waiting. Every full aging step
// lowers the rank by one, floored at MinRank, so a low request (rank 4) is
// guaranteed to reach rank 1 after 72 hours. Lower rank means more urgent.
//
// The rank is a pure function of (priority, createdAt, now) and is recomputed
// on every read; it is never persisted.
func EffectiveRank(base reservation.Priority, createdAt, now time.Time) int {
	bonus := int(now.Sub(createdAt) / agingStep)
	if bonus < 0 {
		bonus = 0
	}
	rank := base.Rank() - bonus
	if rank < MinRank {
		rank = MinRank
	}
	return rank
}

// WaitingHours reports how long a request created at createdAt has been
// waiting, in hours, rounded to one decimal place.
func WaitingHours(createdAt, now time.Time) float64 {
	h := now.Sub(createdAt).Hours()
	if h < 0 {
		h = 0
	}
	return float64(int(h*10+0.5)) / 10
}

// SortPending orders pending reservations for servicing: ascending effective
// rank, ties broken by earliest creation time (FIFO within a tier).
func SortPending(pending []reservation.Reservation, now time.Time) {
	sort.SliceStable(pending, func(i, j int) bool {
		ri := EffectiveRank(pending[i].Priority(), pending[i].CreatedAt(), now)
		rj := EffectiveRank(pending[j].Priority(), pending[j].CreatedAt(), now)
		if ri != rj {
			return ri < rj
		}
		return pending[i].CreatedAt().Before(pending[j].CreatedAt())
	})
}
