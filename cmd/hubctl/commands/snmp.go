package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/snmp"
)

func runSNMPGet(ctx context.Context, session hub.Session, args []string) error {
	oid := snmp.TrimOID(args[0])
	value, err := session.SNMPGet(oid)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", oid, value)
	return nil
}

func runSNMPWalk(ctx context.Context, session hub.Session, args []string) error {
	oid := snmp.TrimOID(args[0])
	values, err := session.SNMPWalk(oid)
	if err != nil {
		return err
	}
	// MarshalIndent sorts map keys, which gives a stable listing.
	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render walk result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
