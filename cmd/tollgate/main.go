package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/tollgate-network/tollgate-daemon/pkg/httputil"
)

var (
	tollgateDataDir = defaultDataDir()
	statePath       = filepath.Join(tollgateDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.0.1"
	app.Name = "tollgate operator CLI"
	app.Usage = "Command line interface for tollgated daemon operators"
	app.Commands = append(
		app.Commands,
		&configCmd,
		&createpaywall,
		&listpaywalls,
		&getpaywall,
		&updatepaywall,
		&deletepaywall,
		&depositaddress,
		&walletaddress,
		&pay,
		&access,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tollgate-operator"
	}
	return filepath.Join(home, ".tollgate-operator")
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	json.Unmarshal(file, &data)

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(tollgateDataDir); os.IsNotExist(err) {
		os.Mkdir(tollgateDataDir, os.ModeDir|0755)
	}

	file, err := os.OpenFile(statePath, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	currentData, err := getState()
	if err != nil {
		return err
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0755); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merged := make(map[string]string, 0)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}

// apiRequest sends the request with the configured identity attached and
// returns the response body, turning non-2xx statuses into errors.
func apiRequest(method, path, body string) (string, error) {
	state, err := getState()
	if err != nil {
		return "", err
	}
	apiURL, ok := state["api_url"]
	if !ok {
		return "", errors.New("set api_url with `config set api_url`")
	}
	identity, ok := state["identity"]
	if !ok {
		return "", errors.New("set identity with `config set identity`")
	}

	status, resp, err := httputil.NewHTTPRequest(
		context.Background(), method, apiURL+path, body,
		map[string]string{"X-Identity": identity},
	)
	if err != nil {
		return "", err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", fmt.Errorf("daemon replied %d: %s", status, resp)
	}

	return resp, nil
}

func printRespJSON(resp string) {
	if resp == "" {
		fmt.Println("ok")
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, []byte(resp), "", "\t"); err != nil {
		fmt.Println(resp)
		return
	}
	fmt.Println(indented.String())
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[tollgate] %v\n", err)
	}
	os.Exit(1)
}
