package props

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/snmp"
)

// Row is one entry of an SNMP table: the row index plus the named cells that
// were present in the walk.
type Row struct {
	Index int
	Cells map[string]string
}

// Cell returns the named cell, or "" when the walk did not include it.
func (r Row) Cell(name string) string {
	return r.Cells[name]
}

// WalkTable walks the subtree below topOID and groups the results into rows.
// columns maps the column sub-identifier (the first OID component after
// topOID) to a cell name; unknown columns are dropped. Rows come back sorted
// by index.
func WalkTable(s hub.Session, topOID string, columns map[string]string) ([]Row, error) {
	walked, err := s.SNMPWalk(topOID)
	if err != nil {
		return nil, err
	}

	rows := make(map[int]map[string]string)
	for oid, value := range walked {
		if len(oid) <= len(topOID)+1 {
			continue
		}
		suffix := strings.SplitN(oid[len(topOID)+1:], ".", 2)
		if len(suffix) != 2 {
			continue
		}
		name, ok := columns[suffix[0]]
		if !ok {
			continue
		}
		idx, err := strconv.Atoi(suffix[1])
		if err != nil {
			continue
		}
		if rows[idx] == nil {
			rows[idx] = make(map[string]string)
		}
		rows[idx][name] = value
	}

	out := make([]Row, 0, len(rows))
	for idx, cells := range rows {
		out = append(out, Row{Index: idx, Cells: cells})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

// WanNetwork is one row of the hub's WAN address table. Hubs in IPv4+IPv6
// provisioning mode carry more than one.
type WanNetwork struct {
	IPAddr  string
	Prefix  int
	Netmask string
	Gateway string
}

func (n WanNetwork) String() string {
	parts := []string{fmt.Sprintf("%s/%d", n.IPAddr, n.Prefix)}
	if n.Netmask != "" {
		parts = append(parts, "netmask "+n.Netmask)
	}
	if n.Gateway != "" {
		parts = append(parts, "gateway "+n.Gateway)
	}
	return strings.Join(parts, " ")
}

const wanNetworkTableOID = "1.3.6.1.4.1.4115.1.20.1.1.1.7.1"

// WanNetworks lists the hub's current WAN networks.
func WanNetworks(s hub.Session) ([]WanNetwork, error) {
	rows, err := WalkTable(s, wanNetworkTableOID, map[string]string{
		"2": "addrtype",
		"3": "ipaddr",
		"4": "prefix",
		"6": "gw",
		"8": "netmask",
	})
	if err != nil {
		return nil, err
	}

	var networks []WanNetwork
	for _, row := range rows {
		if row.Cell("prefix") == "" {
			continue
		}
		prefix, err := strconv.Atoi(row.Cell("prefix"))
		if err != nil {
			continue
		}
		version := snmp.IPVersionFromValue(row.Cell("addrtype"))
		network := WanNetwork{Prefix: prefix}
		network.IPAddr, _ = decodeAddr(row.Cell("ipaddr"), version)
		network.Gateway, _ = decodeAddr(row.Cell("gw"), version)
		if row.Cell("netmask") != "" {
			network.Netmask, _ = snmp.DecodeIPv4(row.Cell("netmask"))
		}
		networks = append(networks, network)
	}
	return networks, nil
}

const dnsServerTableOID = "1.3.6.1.4.1.4115.1.20.1.1.1.11.2.1"

// DNSServers lists the DNS servers the hub currently uses.
func DNSServers(s hub.Session) ([]string, error) {
	rows, err := WalkTable(s, dnsServerTableOID, map[string]string{
		"2": "addrtype",
		"3": "address",
	})
	if err != nil {
		return nil, err
	}

	var servers []string
	for _, row := range rows {
		addr, err := decodeAddr(row.Cell("address"), snmp.IPVersionFromValue(row.Cell("addrtype")))
		if err != nil || addr == "" {
			continue
		}
		servers = append(servers, addr)
	}
	return servers, nil
}

func decodeAddr(raw string, version snmp.IPVersion) (string, error) {
	switch version {
	case snmp.IPv6:
		return snmp.DecodeIPv6(raw)
	default:
		return snmp.DecodeIPv4(raw)
	}
}
