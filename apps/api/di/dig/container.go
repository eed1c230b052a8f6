package dig_container

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/semillerodigital/educompass/apps/api/echo"
	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/dashboard"
	classroomsvc "github.com/semillerodigital/educompass/services/classroom"
	logsvc "github.com/semillerodigital/educompass/services/logger"
	"github.com/semillerodigital/educompass/storage/database"
	inmemdb "github.com/semillerodigital/educompass/storage/database/inmem"
	sqlxrepos "github.com/semillerodigital/educompass/storage/database/sqlx"
	"github.com/semillerodigital/educompass/storage/fixtures"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type ServerParams struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	Dashboard  *dashboard.Service
	Validate   *validator.Validate
	Translator ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

// newDB returns the attendance database, or nil when it is disabled.
func newDB(conf *core.Config, loggerParam DBLoggerParam) *sql.DB {
	if !conf.Database.Enabled {
		return nil
	}

	setUp := func() (*sql.DB, error) {
		if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newAttendanceRepository serves attendance from the database when there is one.
// Otherwise fixture mode gets the demo records and live mode gets none.
func newAttendanceRepository(conf *core.Config, db *sql.DB, loggerParam DBLoggerParam) dashboard.AttendanceRepository {
	if db != nil {
		return sqlxrepos.NewAttendanceRepository(db)
	}

	repo := inmemdb.NewAttendanceRepository(inmemdb.Open())
	if conf.Classroom.UseMocks {
		if err := repo.SaveRecords(context.Background(), fixtures.Attendance()...); err != nil {
			loggerParam.Logger.Fatal(fmt.Sprintf("seeding attendance: %v", err), err)
		}
	}
	return repo
}

// newSource returns the live data source. Missing credentials are not fatal:
// every data request then answers "authentication required".
func newSource(conf *core.Config, logger core.Logger) dashboard.Source {
	if conf.Classroom.UseMocks {
		return nil
	}
	client, err := classroomsvc.NewClientFromConfig(context.Background(), conf, logger)
	if err != nil {
		logger.Warn("live data source unavailable", err)
		return nil
	}
	return client
}

func newDashboard(conf *core.Config, source dashboard.Source, attendance dashboard.AttendanceRepository, logger core.Logger) *dashboard.Service {
	return dashboard.NewService(conf.Classroom.UseMocks, source, attendance, logger)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Dashboard:  p.Dashboard,
		Validate:   p.Validate,
		Translator: p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newAttendanceRepository))
	must(c.Provide(newSource))
	must(c.Provide(newDashboard))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
