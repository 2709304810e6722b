package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/campuskit/bookingd/modules"
	"github.com/campuskit/bookingd/pkg/application"
	"github.com/campuskit/bookingd/pkg/configuration"
	"github.com/campuskit/bookingd/pkg/eventbus"
	"github.com/campuskit/bookingd/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if err := runMigrations(conf); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Conf:     conf,
	})
	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}
	for _, controller := range app.Controllers() {
		controller.Register(router)
	}

	logger.Infof("ops endpoints listening on %s", conf.SocketAddress)
	if err := http.ListenAndServe(conf.SocketAddress, router); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func runMigrations(conf *configuration.Configuration) error {
	db, err := sql.Open("pgx", conf.Database.Opts)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, conf.MigrationsDir)
}
