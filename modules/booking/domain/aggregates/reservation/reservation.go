package reservation

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Priority is an ordered urgency level. Lower rank means more urgent.
type Priority int

const (
	PriorityUrgent Priority = iota + 1
	PriorityHigh
	PriorityNormal
	PriorityLow
)

func ParsePriority(v string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "urgent":
		return PriorityUrgent, true
	case "high":
		return PriorityHigh, true
	case "normal", "":
		return PriorityNormal, true
	case "low":
		return PriorityLow, true
	default:
		return PriorityNormal, false
	}
}

func (p Priority) Rank() int { return int(p) }

func (p Priority) String() string {
	switch p {
	case PriorityUrgent:
		return "urgent"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "normal"
	}
}

// Interval is a half-open time range [start, end).
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, bool) {
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{start: start, end: end}, true
}

func (i Interval) Start() time.Time { return i.start }
func (i Interval) End() time.Time   { return i.end }
func (i Interval) IsZero() bool     { return i.start.IsZero() && i.end.IsZero() }

// Overlaps reports whether two half-open intervals intersect: the end instant
// of one may coincide with the start of the other without conflict.
func (i Interval) Overlaps(other Interval) bool {
	return i.start.Before(other.end) && i.end.After(other.start)
}

type Reservation struct {
	id          int64
	roomID      string
	requesterID string
	subject     string
	purpose     string
	notes       string
	interval    Interval
	priority    Priority
	status      Status
	createdAt   time.Time
	approvedAt  *time.Time
	rejectedAt  *time.Time
}

func New(roomID, requesterID, subject, purpose, notes string, interval Interval, priority Priority) Reservation {
	return Reservation{
		roomID:      strings.TrimSpace(roomID),
		requesterID: strings.TrimSpace(requesterID),
		subject:     strings.TrimSpace(subject),
		purpose:     strings.TrimSpace(purpose),
		notes:       strings.TrimSpace(notes),
		interval:    interval,
		priority:    priority,
		status:      StatusPending,
	}
}

func Hydrate(
	id int64,
	roomID string,
	requesterID string,
	subject string,
	purpose string,
	notes string,
	interval Interval,
	priority Priority,
	status Status,
	createdAt time.Time,
	approvedAt *time.Time,
	rejectedAt *time.Time,
) Reservation {
	return Reservation{
		id:          id,
		roomID:      roomID,
		requesterID: requesterID,
		subject:     subject,
		purpose:     purpose,
		notes:       notes,
		interval:    interval,
		priority:    priority,
		status:      status,
		createdAt:   createdAt,
		approvedAt:  approvedAt,
		rejectedAt:  rejectedAt,
	}
}

func (r Reservation) ID() int64              { return r.id }
func (r Reservation) RoomID() string         { return r.roomID }
func (r Reservation) RequesterID() string    { return r.requesterID }
func (r Reservation) Subject() string        { return r.subject }
func (r Reservation) Purpose() string        { return r.purpose }
func (r Reservation) Notes() string          { return r.notes }
func (r Reservation) Interval() Interval     { return r.interval }
func (r Reservation) Priority() Priority     { return r.priority }
func (r Reservation) Status() Status         { return r.status }
func (r Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r Reservation) ApprovedAt() *time.Time { return r.approvedAt }
func (r Reservation) RejectedAt() *time.Time { return r.rejectedAt }
func (r Reservation) IsZero() bool           { return r.id == 0 && r.roomID == "" }

// IsPending reports whether the reservation can still be decided. The only
// legal transitions are pending to approved and pending to rejected, each at
// most once.
func (r Reservation) IsPending() bool { return r.status == StatusPending }
