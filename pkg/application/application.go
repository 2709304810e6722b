package application

import (
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/campuskit/bookingd/pkg/configuration"
	"github.com/campuskit/bookingd/pkg/eventbus"
)

// Controller registers HTTP handlers on the ops router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature's repositories and services into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	DB() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger
	Configuration() *configuration.Configuration

	RegisterServices(services ...any)
	// Service returns the registered service with the same concrete type as
	// the given value, or nil.
	Service(service any) any

	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
	Conf     *configuration.Configuration
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		conf:     opts.Conf,
		services: make(map[reflect.Type]any),
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	conf        *configuration.Configuration
	services    map[reflect.Type]any
	controllers []Controller
}

func (app *application) DB() *pgxpool.Pool                           { return app.pool }
func (app *application) EventPublisher() eventbus.EventBus           { return app.eventBus }
func (app *application) Logger() *logrus.Logger                      { return app.logger }
func (app *application) Configuration() *configuration.Configuration { return app.conf }

func (app *application) RegisterServices(services ...any) {
	for _, service := range services {
		app.services[reflect.TypeOf(service)] = service
	}
}

func (app *application) Service(service any) any {
	return app.services[reflect.TypeOf(service)]
}

func (app *application) RegisterControllers(controllers ...Controller) {
	app.controllers = append(app.controllers, controllers...)
}

func (app *application) Controllers() []Controller {
	return app.controllers
}
