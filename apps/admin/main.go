package main

import (
	"context"
	"log"
	"os"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/dashboard"
	classroomsvc "github.com/semillerodigital/educompass/services/classroom"
	emailsvc "github.com/semillerodigital/educompass/services/email"
	logsvc "github.com/semillerodigital/educompass/services/logger"
	"github.com/semillerodigital/educompass/storage/database"
	inmemdb "github.com/semillerodigital/educompass/storage/database/inmem"
	sqlxrepos "github.com/semillerodigital/educompass/storage/database/sqlx"
	"github.com/semillerodigital/educompass/storage/fixtures"
)

var logger core.Logger

func main() {
	conf := core.NewConfig()
	stdLogger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	rl := logsvc.NewRollbarLogger(stdLogger, conf)
	rl.Enable(!conf.Debug)
	logger = rl

	cli := commandLine{
		conf:    conf,
		out:     os.Stdout,
		mailSvc: newEmailService(conf),
	}

	// set up DB
	if conf.Database.Enabled {
		db, err := database.Open(conf)
		errAndDie(err)
		cli.db = db
		cli.attendance = sqlxrepos.NewAttendanceRepository(db)
	} else {
		repo := inmemdb.NewAttendanceRepository(inmemdb.Open())
		if conf.Classroom.UseMocks {
			errAndDie(repo.SaveRecords(context.Background(), fixtures.Attendance()...))
		}
		cli.attendance = repo
	}
	cli.newDashboard = dashboardFactory(conf, cli.attendance)

	// start CLI
	err := cli.run(os.Args)
	if cli.db != nil {
		_ = cli.db.Close()
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}

func newEmailService(conf *core.Config) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

// dashboardFactory builds the data adapter; a prompted token takes precedence over configured credentials.
func dashboardFactory(conf *core.Config, attendance dashboard.AttendanceRepository) func(string) *dashboard.Service {
	return func(accessToken string) *dashboard.Service {
		if conf.Classroom.UseMocks {
			return dashboard.NewService(true, nil, attendance, logger)
		}

		cc := *conf
		if accessToken != "" {
			cc.Classroom.AccessToken = accessToken
			cc.Classroom.RefreshToken = ""
		}
		var source dashboard.Source
		client, err := classroomsvc.NewClientFromConfig(context.Background(), &cc, logger)
		if err != nil {
			logger.Warn("live data source unavailable", err)
		} else {
			source = client
		}
		return dashboard.NewService(false, source, attendance, logger)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
