package booking

import (
	"github.com/campuskit/bookingd/modules/booking/infrastructure/persistence"
	"github.com/campuskit/bookingd/modules/booking/services"
	"github.com/campuskit/bookingd/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewBookingService(
			persistence.NewReservationRepository(),
			app.EventPublisher(),
			app.Logger(),
			app.Configuration().Booking,
		),
	)
	return nil
}

func (m *Module) Name() string {
	return "booking"
}
