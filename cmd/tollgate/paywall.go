package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var createpaywall = cli.Command{
	Name:  "createpaywall",
	Usage: "create a new paywall",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:     "price",
			Usage:    "price in the smallest asset unit",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "duration",
			Usage:    "access session duration in seconds",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "destinations",
			Usage:    "JSON array of destinations, percentages summing to 100",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "paywall title",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "paywall description",
		},
		&cli.StringFlag{
			Name:  "resource_url",
			Usage: "url of the protected resource",
		},
	},
	Action: createPaywallAction,
}

var listpaywalls = cli.Command{
	Name:   "listpaywalls",
	Usage:  "list your paywalls",
	Action: listPaywallsAction,
}

var getpaywall = cli.Command{
	Name:      "getpaywall",
	Usage:     "fetch a paywall config by id",
	ArgsUsage: "<id>",
	Action:    getPaywallAction,
}

var updatepaywall = cli.Command{
	Name:      "updatepaywall",
	Usage:     "update fields of a paywall you own",
	ArgsUsage: "<id>",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "price",
			Usage: "new price in the smallest asset unit",
		},
		&cli.Uint64Flag{
			Name:  "duration",
			Usage: "new access session duration in seconds",
		},
		&cli.StringFlag{
			Name:  "destinations",
			Usage: "JSON array replacing the destinations",
		},
		&cli.StringFlag{
			Name:  "title",
			Usage: "new title",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "new description",
		},
		&cli.StringFlag{
			Name:  "resource_url",
			Usage: "new url of the protected resource",
		},
	},
	Action: updatePaywallAction,
}

var deletepaywall = cli.Command{
	Name:      "deletepaywall",
	Usage:     "delete a paywall you own and revoke its access grants",
	ArgsUsage: "<id>",
	Action:    deletePaywallAction,
}

func createPaywallAction(ctx *cli.Context) error {
	var destinations []interface{}
	if err := json.Unmarshal(
		[]byte(ctx.String("destinations")), &destinations,
	); err != nil {
		return fmt.Errorf("destinations must be a JSON array: %w", err)
	}

	body, err := json.Marshal(map[string]interface{}{
		"price":                  ctx.Uint64("price"),
		"sessionDurationSeconds": ctx.Uint64("duration"),
		"destinations":           destinations,
		"title":                  ctx.String("title"),
		"description":            ctx.String("description"),
		"resourceUrl":            ctx.String("resource_url"),
	})
	if err != nil {
		return err
	}

	resp, err := apiRequest(http.MethodPost, "/v1/paywalls", string(body))
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func listPaywallsAction(ctx *cli.Context) error {
	resp, err := apiRequest(http.MethodGet, "/v1/paywalls", "")
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func getPaywallAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "getpaywall"}
	}

	resp, err := apiRequest(
		http.MethodGet, "/v1/paywalls/"+ctx.Args().First(), "",
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func updatePaywallAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "updatepaywall"}
	}

	// only flags the operator passed end up in the body; the daemon leaves
	// everything else untouched.
	fields := map[string]interface{}{}
	if ctx.IsSet("price") {
		fields["price"] = ctx.Uint64("price")
	}
	if ctx.IsSet("duration") {
		fields["sessionDurationSeconds"] = ctx.Uint64("duration")
	}
	if ctx.IsSet("destinations") {
		var destinations []interface{}
		if err := json.Unmarshal(
			[]byte(ctx.String("destinations")), &destinations,
		); err != nil {
			return fmt.Errorf("destinations must be a JSON array: %w", err)
		}
		fields["destinations"] = destinations
	}
	if ctx.IsSet("title") {
		fields["title"] = ctx.String("title")
	}
	if ctx.IsSet("description") {
		fields["description"] = ctx.String("description")
	}
	if ctx.IsSet("resource_url") {
		fields["resourceUrl"] = ctx.String("resource_url")
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return err
	}

	resp, err := apiRequest(
		http.MethodPatch, "/v1/paywalls/"+ctx.Args().First(), string(body),
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}

func deletePaywallAction(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return &invalidUsageError{ctx, "deletepaywall"}
	}

	resp, err := apiRequest(
		http.MethodDelete, "/v1/paywalls/"+ctx.Args().First(), "",
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)

	return nil
}
