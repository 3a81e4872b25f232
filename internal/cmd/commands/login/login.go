// Package login implements the subcommand checking API credentials by
// calling the login information endpoint.
package login

import (
	"context"
	"flag"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/peopledoc/go-docusign/internal/cmd/base"
	"github.com/peopledoc/go-docusign/pkg/client"
)

type Command struct {
	*base.Command

	flagConfig string
	flagEnv    string
}

func (c *Command) Synopsis() string {
	return "Verify DocuSign API credentials"
}

func (c *Command) Help() string {
	return `Usage: docusign login [options]

  This command calls the login information endpoint with the configured
  credentials and prints the resolved account id. Credentials come from a
  YAML config file, or from DOCUSIGN_* environment variables when no
  config file is given.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "", "Path to a YAML config file.",
	)
	f.StringVar(
		&c.flagEnv, "env-file", "", "Path to a .env file to load before reading the environment.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var cfg *client.Config
	if c.flagConfig != "" {
		loaded, err := client.LoadConfig(c.flagConfig)
		if err != nil {
			ui.Error(fmt.Sprintf("error loading config: %v", err))
			return 1
		}
		cfg = loaded
	} else {
		if c.flagEnv != "" {
			if err := godotenv.Load(c.flagEnv); err != nil {
				ui.Error(fmt.Sprintf("error loading env file: %v", err))
				return 1
			}
		}
		cfg = client.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			ui.Error(fmt.Sprintf("incomplete credentials: %v", err))
			return 1
		}
	}
	cfg.Logger = logger

	docusign, err := client.New(*cfg)
	if err != nil {
		ui.Error(fmt.Sprintf("error building client: %v", err))
		return 1
	}

	if _, err := docusign.LoginInformation(context.Background()); err != nil {
		ui.Error(fmt.Sprintf("login failed: %v", err))
		return 1
	}

	ui.Output(fmt.Sprintf("logged in, account %s", docusign.AccountID()))
	return 0
}
