package cmd

import (
	"bufio"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/peopledoc/go-docusign/internal/cmd/base"
	"github.com/peopledoc/go-docusign/internal/cmd/commands/events"
	"github.com/peopledoc/go-docusign/internal/cmd/commands/login"
	"github.com/peopledoc/go-docusign/internal/cmd/commands/recipients"
	"github.com/peopledoc/go-docusign/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	cliName := args[0]

	log := hclog.New(&hclog.LoggerOptions{
		Name: cliName,
	})

	if len(args) == 2 &&
		(args[1] == "-version" ||
			args[1] == "-v") {
		args = []string{cliName, "version"}
	}

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     cliName,
		Args:     args[1:],
		Version:  version.Version,
		Commands: initCommands(log, ui),
	}

	exitCode, err := c.Run()
	if err != nil {
		panic(err)
	}

	return exitCode
}

func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	baseCommand := &base.Command{Log: log, UI: ui}

	return map[string]cli.CommandFactory{
		"events": func() (cli.Command, error) {
			return &events.Command{Command: baseCommand}, nil
		},
		"recipients": func() (cli.Command, error) {
			return &recipients.Command{Command: baseCommand}, nil
		},
		"login": func() (cli.Command, error) {
			return &login.Command{Command: baseCommand}, nil
		},
	}
}
