package main

import (
	"encoding/json"
	"net/http"

	"github.com/urfave/cli/v2"
)

var pay = cli.Command{
	Name:      "pay",
	Usage:     "pay for a paywall and print the receipt",
	ArgsUsage: "<paywall id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "source",
			Usage: "funding slot: deposit or wallet",
			Value: "deposit",
		},
	},
	Action: payAction,
}

func payAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "pay"}
	}

	body, err := json.Marshal(map[string]string{
		"source": ctx.String("source"),
	})
	if err != nil {
		return err
	}

	resp, err := apiRequest(
		http.MethodPost, "/v1/paywalls/"+ctx.Args().First()+"/pay", string(body),
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}
