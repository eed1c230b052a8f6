package main

import (
	"fmt"

	echoapi "github.com/semillerodigital/educompass/apps/api/echo"
	"github.com/semillerodigital/educompass/core/user"
)

func (cli *commandLine) token(userID, role, cellID string) error {
	usr := user.User{ID: userID, Role: role, CellID: cellID}
	token, err := echoapi.GenerateToken(echoapi.GetUserClaims(usr, cli.conf), cli.conf)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
