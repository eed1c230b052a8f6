package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/classroom"
	"github.com/semillerodigital/educompass/core/dashboard"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("the attendance database is disabled; set database.enabled")
)

type attendanceStore interface {
	dashboard.AttendanceRepository
	SaveRecords(ctx context.Context, records ...classroom.AttendanceRecord) error
}

type commandLine struct {
	conf       *core.Config
	out        io.Writer
	db         *sql.DB // nil when the attendance database is disabled
	attendance attendanceStore
	mailSvc    core.EmailService

	// newDashboard builds the data adapter; accessToken overrides the configured upstream credentials.
	newDashboard func(accessToken string) *dashboard.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  report [-course ID] [-prompt]             - print student progress & cell metrics")
	fmt.Fprintln(cli.out, "  notify [-dry] [-prompt]                   - email every user a digest of their unread notifications")
	fmt.Fprintln(cli.out, "  token -user ID -role ROLE [-cell ID]      - issue an API token")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                    - run attendance database migrations")
	fmt.Fprintln(cli.out, "  seed                                      - load the demo attendance records")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportCourse := reportCmd.String("course", "", "Only report on this course.")
	reportPrompt := reportCmd.Bool("prompt", false, "Prompt for an upstream access token.")

	notifyCmd := flag.NewFlagSet("notify", flag.ContinueOnError)
	notifyDry := notifyCmd.Bool("dry", false, "List the digests without sending them.")
	notifyPrompt := notifyCmd.Bool("prompt", false, "Prompt for an upstream access token.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUser := tokenCmd.String("user", "", "The user's id.")
	tokenRole := tokenCmd.String("role", "", "One of student, teacher or coordinator.")
	tokenCell := tokenCmd.String("cell", "", "The user's cell id.")

	for _, fs := range []*flag.FlagSet{reportCmd, notifyCmd, tokenCmd} {
		fs.SetOutput(cli.out)
	}

	ctx := context.Background()

	switch args[1] {
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		token, err := cli.promptToken(*reportPrompt)
		if err != nil {
			return err
		}
		return cli.report(ctx, cli.newDashboard(token), *reportCourse)
	case "notify":
		if err := notifyCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		token, err := cli.promptToken(*notifyPrompt)
		if err != nil {
			return err
		}
		return cli.notify(ctx, cli.newDashboard(token), *notifyDry)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *tokenUser == "" || *tokenRole == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUser, *tokenRole, *tokenCell)
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

// promptToken reads an access token from the terminal without echoing it.
func (cli *commandLine) promptToken(prompt bool) (string, error) {
	if !prompt {
		return "", nil
	}
	fmt.Fprint(cli.out, "Enter access token:")
	token, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", errHelp
	}
	return string(token), nil
}
