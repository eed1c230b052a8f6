package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/semillerodigital/educompass/storage/fixtures"
)

// seed loads the demo attendance records so live courses mirroring the fixtures get attendance rates.
func (cli *commandLine) seed(ctx context.Context) error {
	if cli.db == nil {
		return errNoDatabase
	}
	records := fixtures.Attendance()
	if err := cli.attendance.SaveRecords(ctx, records...); err != nil {
		return errors.Wrap(err, "saving attendance records")
	}
	fmt.Fprintf(cli.out, "%d attendance records saved\n", len(records))
	return nil
}
