package props

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/snmp"
)

const portForwardTableOID = "1.3.6.1.4.1.4115.1.20.1.1.4.12.1"

// Row status values the firmware understands on the port forwarding table.
const (
	rowStatusActive   = "1"
	rowStatusCreating = "5"
	rowStatusDestroy  = "6"
)

// PortForward is one port forwarding rule on the hub.
type PortForward struct {
	Index          int
	Description    string
	Proto          snmp.IPProtocol
	ExtPortStart   int
	ExtPortEnd     int
	LocalAddr      string
	LocalPortStart int
	LocalPortEnd   int
	Enabled        bool
}

// ExtPorts renders the external port range for humans.
func (p PortForward) ExtPorts() string {
	return portSummary(p.ExtPortStart, p.ExtPortEnd)
}

// LocalPorts renders the local port range for humans.
func (p PortForward) LocalPorts() string {
	return portSummary(p.LocalPortStart, p.LocalPortEnd)
}

func (p PortForward) String() string {
	state := "disabled"
	if p.Enabled {
		state = "enabled"
	}
	entry := fmt.Sprintf("%s %s -> %s:%s (%s)",
		p.Proto, p.ExtPorts(), p.LocalAddr, p.LocalPorts(), state)
	if p.Description != "" {
		entry += " # " + p.Description
	}
	return entry
}

func portSummary(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}

// ParsePortRange parses "8080" or "8080-8090".
func ParsePortRange(s string) (start, end int, err error) {
	first, rest, found := strings.Cut(s, "-")
	start, err = strconv.Atoi(first)
	if err != nil || start < 1 || start > 65535 {
		return 0, 0, fmt.Errorf("malformed port range %q", s)
	}
	if !found {
		return start, start, nil
	}
	end, err = strconv.Atoi(rest)
	if err != nil || end < start || end > 65535 {
		return 0, 0, fmt.Errorf("malformed port range %q", s)
	}
	return start, end, nil
}

// PortForwards lists the forwarding rules currently on the hub. This walks
// a big table, which the hub serves slowly.
func PortForwards(s hub.Session) ([]PortForward, error) {
	rows, err := WalkTable(s, portForwardTableOID, map[string]string{
		"2":  "desc",
		"3":  "ext_port_start",
		"4":  "ext_port_end",
		"5":  "proto",
		"6":  "local_addr_type",
		"7":  "local_addr",
		"9":  "local_port_start",
		"10": "local_port_end",
		"11": "rowstatus",
	})
	if err != nil {
		return nil, err
	}

	entries := make([]PortForward, 0, len(rows))
	for _, row := range rows {
		entry := PortForward{
			Index:       row.Index,
			Description: row.Cell("desc"),
			Proto:       snmp.IPProtocolFromValue(row.Cell("proto")),
			Enabled:     row.Cell("rowstatus") == rowStatusActive,
		}
		entry.ExtPortStart, _ = strconv.Atoi(row.Cell("ext_port_start"))
		entry.ExtPortEnd, _ = strconv.Atoi(row.Cell("ext_port_end"))
		entry.LocalPortStart, _ = strconv.Atoi(row.Cell("local_port_start"))
		entry.LocalPortEnd, _ = strconv.Atoi(row.Cell("local_port_end"))
		version := snmp.IPVersionFromValue(row.Cell("local_addr_type"))
		entry.LocalAddr, _ = decodeAddr(row.Cell("local_addr"), version)
		entries = append(entries, entry)
	}
	return entries, nil
}

// AddPortForward creates a new rule on the hub. Column writes follow the
// order the stock web interface uses; anything else confuses the firmware.
func AddPortForward(s hub.Session, entry PortForward) error {
	existing, err := PortForwards(s)
	if err != nil {
		return err
	}
	index := 1
	for _, old := range existing {
		if old.Index >= index {
			index = old.Index + 1
		}
	}

	wireAddr, _, err := snmp.EncodeIPv4(entry.LocalAddr)
	if err != nil {
		return fmt.Errorf("malformed local address %q: %w", entry.LocalAddr, err)
	}

	set := func(column int, value string, dt snmp.Type) error {
		oid := fmt.Sprintf("%s.%d.%d", portForwardTableOID, column, index)
		return s.SNMPSet(oid, value, dt)
	}

	steps := []struct {
		column int
		value  string
		dt     snmp.Type
	}{
		{11, rowStatusCreating, snmp.TypeInt},
		{3, strconv.Itoa(entry.ExtPortStart), snmp.TypePort},
		{4, strconv.Itoa(entry.ExtPortEnd), snmp.TypePort},
		{5, entry.Proto.Value(), snmp.TypeInt},
		{6, string(snmp.IPv4), snmp.TypeInt},
		{7, strings.ToUpper(wireAddr), snmp.TypeString},
		{9, strconv.Itoa(entry.LocalPortStart), snmp.TypePort},
		{10, strconv.Itoa(entry.LocalPortEnd), snmp.TypePort},
		{11, rowStatusActive, snmp.TypeInt},
	}
	for _, step := range steps {
		if err := set(step.column, step.value, step.dt); err != nil {
			return err
		}
	}
	return s.ApplySettings()
}

// DeletePortForward removes the rules matching proto and external port
// range. Missing entries are silently ignored. Settings are applied even
// when a delete fails part way, so earlier removals take effect.
func DeletePortForward(s hub.Session, proto snmp.IPProtocol, extStart, extEnd int) error {
	existing, err := PortForwards(s)
	if err != nil {
		return err
	}
	defer s.ApplySettings()

	for _, entry := range existing {
		if entry.Proto != proto || entry.ExtPortStart != extStart || entry.ExtPortEnd != extEnd {
			continue
		}
		oid := fmt.Sprintf("%s.11.%d", portForwardTableOID, entry.Index)
		if err := s.SNMPSet(oid, rowStatusDestroy, snmp.TypeInt); err != nil {
			return err
		}
	}
	return nil
}
