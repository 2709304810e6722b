package models

import "time"

type Reservation struct {
	ID         int64
	Room       string
	Requester  string
	Subject    string
	Purpose    string
	Notes      string
	StartTime  time.Time
	EndTime    time.Time
	Priority   string
	Status     string
	CreatedAt  time.Time
	ApprovedAt *time.Time
	RejectedAt *time.Time
}
