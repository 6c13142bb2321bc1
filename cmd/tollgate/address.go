package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var depositaddress = cli.Command{
	Name:      "depositaddress",
	Usage:     "get your one-time deposit address for a paywall",
	ArgsUsage: "<paywall id>",
	Action:    depositAddressAction,
}

var walletaddress = cli.Command{
	Name:   "walletaddress",
	Usage:  "get your shared wallet deposit address",
	Action: walletAddressAction,
}

func depositAddressAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "depositaddress"}
	}

	resp, err := apiRequest(
		http.MethodGet, "/v1/paywalls/"+ctx.Args().First()+"/address", "",
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func walletAddressAction(ctx *cli.Context) error {
	resp, err := apiRequest(http.MethodGet, "/v1/wallet/address", "")
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}
