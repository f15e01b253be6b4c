package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/props"
	"github.com/cablekit/hubctl/internal/snmp"
)

func runPortForwardList(ctx context.Context, session hub.Session, args []string) error {
	entries, err := props.PortForwards(session)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Println(entry)
	}
	return nil
}

func runPortForwardAdd(ctx context.Context, session hub.Session, args []string) error {
	proto, ok := snmp.ParseProtocol(args[0])
	if !ok {
		return fmt.Errorf("unknown protocol %q", args[0])
	}
	extStart, extEnd, err := props.ParsePortRange(args[1])
	if err != nil {
		return err
	}
	localStart, localEnd, err := props.ParsePortRange(args[3])
	if err != nil {
		return err
	}

	entry := props.PortForward{
		Proto:          proto,
		ExtPortStart:   extStart,
		ExtPortEnd:     extEnd,
		LocalAddr:      args[2],
		LocalPortStart: localStart,
		LocalPortEnd:   localEnd,
	}
	if err := props.AddPortForward(session, entry); err != nil {
		return err
	}
	fmt.Printf("Added forwarding of %s %s to %s:%s\n",
		proto, entry.ExtPorts(), entry.LocalAddr, entry.LocalPorts())
	return nil
}

func runPortForwardDel(ctx context.Context, session hub.Session, args []string) error {
	proto, ok := snmp.ParseProtocol(args[0])
	if !ok {
		return fmt.Errorf("unknown protocol %q", args[0])
	}
	extStart, extEnd, err := props.ParsePortRange(args[1])
	if err != nil {
		return err
	}
	return props.DeletePortForward(session, proto, extStart, extEnd)
}
