package reservation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/campuskit/bookingd/pkg/constants"
)

type CreateDTO struct {
	RoomID      string    `json:"room" validate:"required"`
	RequesterID string    `json:"requester" validate:"required"`
	Subject     string    `json:"subject"`
	Purpose     string    `json:"purpose" validate:"required"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required"`
	Notes       string    `json:"notes"`
	Priority    string    `json:"priority"`
}

func (d *CreateDTO) Normalize() {
	d.RoomID = strings.TrimSpace(d.RoomID)
	d.RequesterID = strings.TrimSpace(d.RequesterID)
	d.Subject = strings.TrimSpace(d.Subject)
	d.Purpose = strings.TrimSpace(d.Purpose)
	d.Notes = strings.TrimSpace(d.Notes)
	d.Priority = strings.ToLower(strings.TrimSpace(d.Priority))
}

// Ok validates the DTO, returning field-keyed messages for everything wrong
// with it.
func (d *CreateDTO) Ok() (map[string]string, bool) {
	d.Normalize()

	fieldErrors := map[string]string{}
	if errs := constants.Validate.Struct(d); errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			fieldErrors[err.Field()] = "this field is required"
		}
	}

	if _, ok := NewInterval(d.Start, d.End); !ok && fieldErrors["Start"] == "" && fieldErrors["End"] == "" {
		fieldErrors["End"] = "end must be after start"
	}
	if _, ok := ParsePriority(d.Priority); !ok {
		fieldErrors["Priority"] = "must be one of urgent, high, normal, low"
	}

	return fieldErrors, len(fieldErrors) == 0
}

// ToEntity converts a validated DTO into a pending reservation.
func (d *CreateDTO) ToEntity() Reservation {
	interval, _ := NewInterval(d.Start, d.End)
	priority, _ := ParsePriority(d.Priority)
	return New(d.RoomID, d.RequesterID, d.Subject, d.Purpose, d.Notes, interval, priority)
}
