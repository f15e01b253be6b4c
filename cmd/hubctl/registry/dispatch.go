package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/cablekit/hubctl/internal/hub"
)

// action wraps a descriptor into the cli action that manages the session
// lifecycle: validate arguments, open the session when the command needs
// one, log in when required and a password is available, run the handler,
// and always release the session.
func (r *Registry) action(desc *Command) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		args, err := collectArgs(desc, cmd.Args().Slice())
		if err != nil {
			return err
		}

		if !desc.NeedsHub {
			return desc.RunNoHub(ctx, args)
		}

		opts := hub.Options{
			Host:      cmd.String("host"),
			Username:  cmd.String("username"),
			Password:  r.resolvePassword(cmd),
			Transport: cmd.String("transport"),
			Community: cmd.String("community"),
		}

		session, err := r.Open(opts)
		if err != nil {
			return err
		}
		defer session.Close()

		// Without a password the command runs against the unauthenticated
		// session; plenty of status OIDs are readable anonymously.
		if desc.NeedsLogin && opts.Password != "" {
			if err := session.Login(opts.Username, opts.Password); err != nil {
				return err
			}
		}

		return desc.Run(ctx, session, args)
	}
}

// collectArgs checks arity and choice constraints ahead of any I/O.
func collectArgs(desc *Command, raw []string) ([]string, error) {
	minArgs := len(desc.Args)
	greedy := len(desc.Args) > 0 && desc.Args[len(desc.Args)-1].OneOrMore

	if len(raw) < minArgs {
		return nil, fmt.Errorf("%s: expected %s", desc.Name, argsUsage(desc.Args))
	}
	if !greedy && len(raw) > len(desc.Args) {
		return nil, fmt.Errorf("%s: too many arguments, expected %s", desc.Name, argsUsage(desc.Args))
	}

	for i, value := range raw {
		spec := desc.Args[min(i, len(desc.Args)-1)]
		if len(spec.Choices) == 0 {
			continue
		}
		if !slices.Contains(spec.Choices, value) {
			return nil, fmt.Errorf("%s: invalid %s %q", desc.Name, spec.Name, value)
		}
	}
	return raw, nil
}

func (r *Registry) resolvePassword(cmd *cli.Command) string {
	if password := cmd.String("password"); password != "" {
		return password
	}
	if r.LookupPassword == nil {
		return ""
	}
	password, err := r.LookupPassword()
	if err != nil {
		return ""
	}
	return password
}
