// Package snmp holds the SNMP value types and wire codecs used by the hub.
//
// The hub proxies SNMP over its web interface and encodes values in its own
// textual formats: IP addresses, MAC addresses and timestamps arrive as
// dollar-prefixed hex strings, booleans as SNMP TruthValue integers.
package snmp

import "strings"

// Type identifies the SNMP datatype suffix the hub expects on set requests.
type Type string

const (
	// TypeNone means no datatype suffix is sent
	TypeNone Type = ""
	// TypeInt is a plain integer
	TypeInt Type = "2"
	// TypeString is an octet string
	TypeString Type = "4"
	// TypePort is an integer constrained to the TCP/UDP port range
	TypePort Type = "66"
)

// IPVersion is the address type column used in the hub's SNMP tables.
type IPVersion string

const (
	IPVersionUnknown IPVersion = "0"
	IPv4             IPVersion = "1"
	IPv6             IPVersion = "2"
)

// IPVersionFromValue maps a raw table cell to an IPVersion.
func IPVersionFromValue(raw string) IPVersion {
	switch raw {
	case "1":
		return IPv4
	case "2":
		return IPv6
	default:
		return IPVersionUnknown
	}
}

// IPProtocol is the protocol column of the port forwarding table.
type IPProtocol string

const (
	ProtocolTCP  IPProtocol = "tcp"
	ProtocolUDP  IPProtocol = "udp"
	ProtocolBoth IPProtocol = "tcp+udp"
)

// IPProtocolFromValue maps a raw table cell to an IPProtocol.
func IPProtocolFromValue(raw string) IPProtocol {
	switch raw {
	case "1":
		return ProtocolTCP
	case "2":
		return ProtocolUDP
	default:
		return ProtocolBoth
	}
}

// Value returns the integer the hub uses for the protocol.
func (p IPProtocol) Value() string {
	switch p {
	case ProtocolTCP:
		return "1"
	case ProtocolUDP:
		return "2"
	default:
		return "3"
	}
}

// ParseProtocol parses a user-supplied protocol name.
func ParseProtocol(s string) (IPProtocol, bool) {
	switch strings.ToLower(s) {
	case "tcp":
		return ProtocolTCP, true
	case "udp":
		return ProtocolUDP, true
	case "both", "tcp+udp":
		return ProtocolBoth, true
	}
	return "", false
}

// TrimOID strips leading and trailing dot separators from an OID so that
// user input like ".1.3.6.1.2.1." normalizes to the bare numeric path.
func TrimOID(oid string) string {
	return strings.Trim(oid, ".")
}
