package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/dinkhousedev/dink-house-scheduler/internal/config"
	"github.com/dinkhousedev/dink-house-scheduler/internal/infrastructure/repository/postgres"
	"github.com/dinkhousedev/dink-house-scheduler/internal/interfaces/httpapi"
	idgen "github.com/dinkhousedev/dink-house-scheduler/internal/platform/id"
	"github.com/dinkhousedev/dink-house-scheduler/internal/platform/logging"
	"github.com/dinkhousedev/dink-house-scheduler/internal/usecase"
)

// Application bundles the wired server and the resources it owns.
type Application struct {
	Server *http.Server
	DB     *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	courtRepo := postgres.NewCourtRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	overrideRepo := postgres.NewOverrideRepository(db)

	scheduleSvc := usecase.NewScheduleService(courtRepo, scheduleRepo, idgen.NewRandomGenerator(), logger)
	overrideSvc := usecase.NewOverrideService(scheduleRepo, overrideRepo, logger)
	calendarSvc := usecase.NewCalendarService(scheduleRepo, overrideRepo, logger)
	courtSvc := usecase.NewCourtService(courtRepo)
	checker := usecase.NewLiveConflictChecker(scheduleSvc)

	handler := httpapi.NewHandler(scheduleSvc, overrideSvc, calendarSvc, checker, courtSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.StaffToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		_ = db.Close()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &Application{Server: server, DB: db}, nil
}

func (a *Application) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	return db, nil
}
