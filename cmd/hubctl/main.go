package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cablekit/hubctl/cmd/hubctl/commands"
	"github.com/cablekit/hubctl/internal/config"
)

var (
	// Version information (will be set by build flags)
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.WarnLevel)

	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", err)
		cfg = &config.Config{}
	}

	reg, err := commands.BuildRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize command registry: %v\n", err)
		os.Exit(1)
	}

	cmd := newRootCommand(reg, cfg)
	cmd.Version = Version

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
