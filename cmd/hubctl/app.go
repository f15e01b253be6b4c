package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/cablekit/hubctl/cmd/hubctl/registry"
	"github.com/cablekit/hubctl/internal/config"
	"github.com/cablekit/hubctl/internal/hub"
)

// newRootCommand builds the CLI. Flag resolution order is explicit flag,
// then environment variable, then config file, then the hub's factory
// defaults.
func newRootCommand(reg *registry.Registry, cfg *config.Config) *cli.Command {
	host := hub.DefaultHost
	if cfg.Host != "" {
		host = cfg.Host
	}
	username := hub.DefaultUsername
	if cfg.Username != "" {
		username = cfg.Username
	}
	transport := hub.TransportHTTP
	if cfg.Transport != "" {
		transport = cfg.Transport
	}
	community := "public"
	if cfg.Community != "" {
		community = cfg.Community
	}

	return &cli.Command{
		Name:  "hubctl",
		Usage: "Inspect and configure a cable-modem hub",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Aliases: []string{"H"},
				Usage:   "hub address",
				Value:   host,
				Sources: cli.EnvVars("HUB"),
			},
			&cli.StringFlag{
				Name:    "username",
				Aliases: []string{"u"},
				Usage:   "admin username",
				Value:   username,
				Sources: cli.EnvVars("HUB_USER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "admin password; without one commands run unauthenticated",
				Sources: cli.EnvVars("HUB_PASSWORD"),
			},
			&cli.StringFlag{
				Name:    "transport",
				Usage:   "device transport: http or snmp",
				Value:   transport,
				Sources: cli.EnvVars("HUB_TRANSPORT"),
			},
			&cli.StringFlag{
				Name:    "community",
				Usage:   "SNMP community for the snmp transport",
				Value:   community,
				Sources: cli.EnvVars("HUB_COMMUNITY"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				logrus.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: reg.Commands(),
		// No subcommand is not an error: print usage and exit cleanly.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
}
