// Package registry holds the catalog of hubctl commands and builds the CLI
// grammar from it.
//
// Commands are plain descriptor records registered once at startup. The
// registry is ordered: registration order is listing order. After the CLI
// grammar has been built the registry is never mutated.
package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/secrets"
)

// ArgSpec describes one positional argument of a command.
type ArgSpec struct {
	Name  string
	Usage string
	// OneOrMore makes the argument greedy: it consumes all remaining
	// positional arguments and requires at least one.
	OneOrMore bool
	// Choices restricts accepted values. Checked before any session I/O.
	Choices []string
}

// HandlerFunc runs a command against an open session.
type HandlerFunc func(ctx context.Context, session hub.Session, args []string) error

// NoHubHandlerFunc runs a command that needs no session at all.
type NoHubHandlerFunc func(ctx context.Context, args []string) error

// Command is the descriptor for one hubctl command. NeedsLogin and NeedsHub
// default to true at registration; the NoLogin and NoHub options override
// them independently.
type Command struct {
	Name  string
	Usage string
	Args  []ArgSpec

	NeedsLogin bool
	NeedsHub   bool

	Run      HandlerFunc
	RunNoHub NoHubHandlerFunc
}

// Option tweaks a command descriptor at registration time.
type Option func(*Command)

// NoLogin marks a command as not requiring authentication. A session is
// still opened, but login is skipped.
func NoLogin() Option {
	return func(c *Command) { c.NeedsLogin = false }
}

// NoHub marks a command as not requiring a session at all. The command must
// provide RunNoHub instead of Run.
func NoHub() Option {
	return func(c *Command) {
		c.NeedsHub = false
		c.NeedsLogin = false
	}
}

// Registry is the ordered catalog of commands.
type Registry struct {
	commands []*Command

	// Open creates the session for commands that need one. Tests replace
	// it with a stub.
	Open func(opts hub.Options) (hub.Session, error)

	// LookupPassword supplies the stored password when neither the flag
	// nor the environment provided one.
	LookupPassword func() (string, error)
}

// New creates an empty registry wired to the real device client and
// password store.
func New() *Registry {
	return &Registry{
		Open:           hub.Open,
		LookupPassword: secrets.LoadPassword,
	}
}

// Register appends a command to the catalog. Resource requirements default
// to needing both a hub session and a login.
func (r *Registry) Register(cmd Command, opts ...Option) error {
	if cmd.Name == "" {
		return fmt.Errorf("command has no name")
	}
	for _, existing := range r.commands {
		if existing.Name == cmd.Name {
			return fmt.Errorf("command %q is already registered", cmd.Name)
		}
	}

	cmd.NeedsLogin = true
	cmd.NeedsHub = true
	for _, opt := range opts {
		opt(&cmd)
	}

	if cmd.NeedsHub && cmd.Run == nil {
		return fmt.Errorf("command %q needs a hub but has no handler", cmd.Name)
	}
	if !cmd.NeedsHub && cmd.RunNoHub == nil {
		return fmt.Errorf("command %q needs no hub but has no handler", cmd.Name)
	}

	r.commands = append(r.commands, &cmd)
	return nil
}

// Commands builds the CLI sub-grammar, one cli.Command per registered
// command, in registration order.
func (r *Registry) Commands() []*cli.Command {
	built := make([]*cli.Command, 0, len(r.commands))
	for _, desc := range r.commands {
		built = append(built, &cli.Command{
			Name:      desc.Name,
			Usage:     desc.Usage,
			ArgsUsage: argsUsage(desc.Args),
			Action:    r.action(desc),
		})
	}
	return built
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Command, bool) {
	for _, desc := range r.commands {
		if desc.Name == name {
			return desc, true
		}
	}
	return nil, false
}

func argsUsage(specs []ArgSpec) string {
	parts := make([]string, 0, len(specs))
	for _, spec := range specs {
		part := "<" + spec.Name + ">"
		if spec.OneOrMore {
			part += "..."
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
