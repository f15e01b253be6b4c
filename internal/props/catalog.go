// Package props maps the hub's named properties onto SNMP OIDs.
//
// The catalog is fixed at compile time: every property carries the OID it
// lives at, a decoder for the hub's wire representation, and, when the
// property is writable, an encoder. A property without an encoder is
// read-only; that check happens before any write is attempted.
package props

import (
	"fmt"
	"sort"

	"github.com/cablekit/hubctl/internal/snmp"
)

// Property describes one named hub setting.
type Property struct {
	OID    string
	Decode snmp.DecodeFunc
	// Encode is nil for read-only properties.
	Encode snmp.EncodeFunc
}

// Settable reports whether the property can be written.
func (p Property) Settable() bool {
	return p.Encode != nil
}

func decodeTODStatus(raw string) (string, error) {
	status := map[string]string{
		"0": "Not Provisioned",
		"1": "Missing Server Address",
		"2": "Missing Server Address",
		"3": "Missing Server Address",
		"4": "Starting Request",
		"5": "Request Failed",
		"6": "No Response Received",
		"7": "Invalid Data Format",
		"8": "Retrieved",
		"9": "Failed",
	}
	if text, ok := status[raw]; ok {
		return text, nil
	}
	return fmt.Sprintf("Unknown SNMP value %s", raw), nil
}

func strProp(oid string) Property {
	return Property{OID: oid, Decode: snmp.DecodeString, Encode: snmp.EncodeString}
}

func intProp(oid string) Property {
	return Property{OID: oid, Decode: snmp.DecodeInt, Encode: snmp.EncodeInt}
}

func boolProp(oid string) Property {
	return Property{OID: oid, Decode: snmp.DecodeBool, Encode: snmp.EncodeBool}
}

func ipv4Prop(oid string) Property {
	return Property{OID: oid, Decode: snmp.DecodeIPv4, Encode: snmp.EncodeIPv4}
}

func readOnly(oid string, decode snmp.DecodeFunc) Property {
	return Property{OID: oid, Decode: decode}
}

// catalog is the process-wide set of known properties. Built once, never
// mutated.
var catalog = map[string]Property{
	// identity
	"language":          strProp("1.3.6.1.4.1.4115.1.20.1.1.5.6.0"),
	"name":              strProp("1.3.6.1.4.1.4115.1.20.1.1.5.7.0"),
	"serial_number":     strProp("1.3.6.1.4.1.4115.1.20.1.1.5.8.0"),
	"bootcode_version":  strProp("1.3.6.1.4.1.4115.1.20.1.1.5.9.0"),
	"hardware_version":  strProp("1.3.6.1.4.1.4115.1.20.1.1.5.10.0"),
	"firmware_version":  strProp("1.3.6.1.4.1.4115.1.20.1.1.5.11.0"),
	"customer_id":       strProp("1.3.6.1.4.1.4115.1.20.1.1.5.14.0"),
	"current_time":      readOnly("1.3.6.1.4.1.4115.1.20.1.1.5.15.0", snmp.DecodeDate),
	"auth_username":     strProp("1.3.6.1.4.1.4115.1.20.1.1.5.16.1.2.1"),
	"first_install_wizard_completed": boolProp("1.3.6.1.4.1.4115.1.20.1.1.5.62.0"),

	// wifi
	"wifi_24ghz_essid":    strProp("1.3.6.1.4.1.4115.1.20.1.1.3.22.1.2.10001"),
	"wifi_24ghz_password": strProp("1.3.6.1.4.1.4115.1.20.1.1.3.26.1.2.10001"),
	"wifi_5ghz_essid":     strProp("1.3.6.1.4.1.4115.1.20.1.1.3.22.1.2.10101"),
	"wifi_5ghz_password":  strProp("1.3.6.1.4.1.4115.1.20.1.1.3.26.1.2.10101"),

	// DOCSIS
	"max_cpe_allowed":               intProp("1.3.6.1.4.1.4115.1.3.3.1.1.1.3.1.0"),
	"network_access":                boolProp("1.3.6.1.4.1.4115.1.3.3.1.1.1.3.2.0"),
	"docsis_base_tod_status":        readOnly("1.3.6.1.4.1.4115.1.3.4.1.1.14.0", decodeTODStatus),
	"cmDoc30SetupPacketCableRegion": readOnly("1.3.6.1.4.1.4115.1.3.4.1.3.8.0", snmp.DecodeInt),
	"esafeErouterInitModeCtrl":      strProp("1.3.6.1.4.1.4491.2.1.14.1.5.4.0"),

	// WAN
	"wan_conn_type":               readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.1.0", snmp.DecodeString),
	"wan_conn_hostname":           strProp("1.3.6.1.4.1.4115.1.20.1.1.1.2.0"),
	"wan_conn_domainname":         strProp("1.3.6.1.4.1.4115.1.20.1.1.1.3.0"),
	"wan_mtu_size":                intProp("1.3.6.1.4.1.4115.1.20.1.1.1.4.0"),
	"wan_current_ipaddr_ipv4":     ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.1.7.1.3.1"),
	"wan_current_ipaddr_ipv6":     readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.7.1.3.2", snmp.DecodeIPv6),
	"wan_current_netmask":         ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.1.7.1.8.1"),
	"wan_current_gw_ipv4":         ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.1.7.1.6.1"),
	"wan_current_gw_ipv6":         readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.7.1.6.2", snmp.DecodeIPv6),
	"wan_l2tp_username":           strProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.1.0"),
	"wan_l2tp_password":           strProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.2.0"),
	"wan_l2tp_enable_idle_timeout": boolProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.3.0"),
	"wan_l2tp_idle_timeout":       intProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.4.0"),
	"wan_l2tp_tunnel_addr":        ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.1.10.6.0"),
	"wan_l2tp_tunnel_hostname":    strProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.7.0"),
	"wan_l2tp_keepalive_enabled":  boolProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.8.0"),
	"wan_l2tp_keepalive_timeout":  intProp("1.3.6.1.4.1.4115.1.20.1.1.1.10.9.0"),
	"wan_use_auto_dns":            boolProp("1.3.6.1.4.1.4115.1.20.1.1.1.11.1.0"),
	"wan_if_macaddr":              readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.13.0", snmp.DecodeMAC),
	"wan_dhcp_duration_ipv4":      intProp("1.3.6.1.4.1.4115.1.20.1.1.1.12.3.0"),
	"wan_dhcp_expire_ipv4":        readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.12.4.0", snmp.DecodeDate),
	"wan_dhcp_duration_ipv6":      intProp("1.3.6.1.4.1.4115.1.20.1.1.1.12.7.0"),
	"wan_dhcp_expire_ipv6":        readOnly("1.3.6.1.4.1.4115.1.20.1.1.1.12.8.0", snmp.DecodeDate),
	"wan_dhcp_server_ip":          ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.1.12.9.0"),
	"wan_ip_prov_mode":            strProp("1.3.6.1.4.1.4115.1.20.1.1.1.17.0"),

	// LAN
	"lan_subnetmask":               ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.3.200"),
	"lan_gateway_ipv4":             ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.5.200"),
	"lan_gateway2_ipv4":            ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.7.200"),
	"lan_dhcp_enabled":             boolProp("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.9.200"),
	"lan_dhcpv4_range_start":       ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.11.200"),
	"lan_dhcpv4_range_end":         ipv4Prop("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.13.200"),
	"lan_dhcpv4_leasetime":         intProp("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.14.200"),
	"lan_dhcpv6_prefixlength":      intProp("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.29.200"),
	"lan_dhcpv6_range_start":       readOnly("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.31.200", snmp.DecodeIPv6),
	"lan_dhcpv6_leasetime":         intProp("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.33.200"),
	"lan_parentalcontrols_enabled": boolProp("1.3.6.1.4.1.4115.1.20.1.1.2.2.1.39.200"),
}

// Lookup returns the property for name.
func Lookup(name string) (Property, bool) {
	p, ok := catalog[name]
	return p, ok
}

// Names returns every known property name, sorted lexicographically.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
