package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/core"
	"github.com/semillerodigital/educompass/core/dashboard"
	"github.com/semillerodigital/educompass/core/notification"
)

func (cli *commandLine) notify(ctx context.Context, svc *dashboard.Service, dry bool) error {
	snap, err := svc.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "loading dashboard data")
	}

	digests := notification.Digests(snap.Notifications(), snap.Users)
	messages := make([]*core.EmailMessage, 0, len(digests))
	for _, d := range digests {
		fmt.Fprintf(cli.out, "%s <%s>: %d unread\n", d.User.ID, d.User.Email, len(d.Notifications))
		messages = append(messages, d.Message(cli.conf.FrontendBaseURL))
	}
	if dry || len(messages) == 0 {
		return nil
	}

	cli.mailSvc.SendMessages(messages...)
	cli.mailSvc.Wait()
	fmt.Fprintf(cli.out, "%d digests sent\n", len(messages))
	return nil
}
