package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var access = cli.Command{
	Name:      "access",
	Usage:     "check whether you hold an active access session for a paywall",
	ArgsUsage: "<paywall id>",
	Action:    accessAction,
}

func accessAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "access"}
	}

	resp, err := apiRequest(
		http.MethodGet, "/v1/paywalls/"+ctx.Args().First()+"/access", "",
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}
