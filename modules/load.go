package modules

import (
	"github.com/campuskit/bookingd/modules/booking"
	"github.com/campuskit/bookingd/pkg/application"
)

var BuiltInModules = []application.Module{
	booking.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
