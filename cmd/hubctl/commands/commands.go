// Package commands defines every hubctl command and assembles the registry.
package commands

import (
	"github.com/cablekit/hubctl/cmd/hubctl/registry"
	"github.com/cablekit/hubctl/internal/props"
)

// BuildRegistry registers all commands in their listing order. It is called
// exactly once from main; the returned registry is read-only afterwards.
func BuildRegistry() (*registry.Registry, error) {
	r := registry.New()

	catalog := props.Names()

	entries := []struct {
		cmd  registry.Command
		opts []registry.Option
	}{
		{cmd: registry.Command{
			Name:  "info",
			Usage: "Show the hub's identity and versions",
			Run:   runInfo,
		}},
		{cmd: registry.Command{
			Name:  "lanstatus",
			Usage: "Show LAN addressing and DHCP settings",
			Run:   runLanStatus,
		}},
		{cmd: registry.Command{
			Name:  "wanstatus",
			Usage: "Show WAN connection state and addresses",
			Run:   runWanStatus,
		}},
		{cmd: registry.Command{
			Name:  "portforward_list",
			Usage: "List port forwarding rules",
			Run:   runPortForwardList,
		}},
		{cmd: registry.Command{
			Name:  "portforward_add",
			Usage: "Add a port forwarding rule",
			Args: []registry.ArgSpec{
				{Name: "proto", Usage: "protocol to forward", Choices: []string{"tcp", "udp", "both"}},
				{Name: "ext-ports", Usage: "external port or port range, e.g. 8080 or 8080-8090"},
				{Name: "local-addr", Usage: "LAN address to forward to"},
				{Name: "local-ports", Usage: "local port or port range"},
			},
			Run: runPortForwardAdd,
		}},
		{cmd: registry.Command{
			Name:  "portforward_del",
			Usage: "Remove port forwarding rules matching protocol and external ports",
			Args: []registry.ArgSpec{
				{Name: "proto", Usage: "protocol of the rule", Choices: []string{"tcp", "udp", "both"}},
				{Name: "ext-ports", Usage: "external port or port range of the rule"},
			},
			Run: runPortForwardDel,
		}},
		{cmd: registry.Command{
			Name:  "device_list",
			Usage: "List LAN devices known to the hub",
			Run:   runDeviceList,
		}},
		{
			cmd: registry.Command{
				Name:     "properties",
				Usage:    "List all known property names",
				RunNoHub: runProperties,
			},
			opts: []registry.Option{registry.NoHub()},
		},
		{cmd: registry.Command{
			Name:  "get_property",
			Usage: "Read one or more hub properties",
			Args: []registry.ArgSpec{
				{Name: "name", Usage: "property name", OneOrMore: true, Choices: catalog},
			},
			Run: runGetProperty,
		}},
		{cmd: registry.Command{
			Name:  "set_property",
			Usage: "Write a hub property",
			Args: []registry.ArgSpec{
				{Name: "name", Usage: "property name", Choices: catalog},
				{Name: "value", Usage: "new value"},
			},
			Run: runSetProperty,
		}},
		{cmd: registry.Command{
			Name:  "snmp_get",
			Usage: "Read a raw SNMP OID",
			Args: []registry.ArgSpec{
				{Name: "oid", Usage: "object identifier, leading/trailing dots are ignored"},
			},
			Run: runSNMPGet,
		}},
		{cmd: registry.Command{
			Name:  "snmp_walk",
			Usage: "Walk a raw SNMP subtree",
			Args: []registry.ArgSpec{
				{Name: "oid", Usage: "object identifier, leading/trailing dots are ignored"},
			},
			Run: runSNMPWalk,
		}},
		{
			cmd: registry.Command{
				Name:  "password_set",
				Usage: "Store the hub password in the OS keyring",
				Args: []registry.ArgSpec{
					{Name: "password", Usage: "password to store"},
				},
				RunNoHub: runPasswordSet,
			},
			opts: []registry.Option{registry.NoHub()},
		},
		{
			cmd: registry.Command{
				Name:     "password_clear",
				Usage:    "Remove the stored hub password",
				RunNoHub: runPasswordClear,
			},
			opts: []registry.Option{registry.NoHub()},
		},
	}

	for _, entry := range entries {
		if err := r.Register(entry.cmd, entry.opts...); err != nil {
			return nil, err
		}
	}
	return r, nil
}
