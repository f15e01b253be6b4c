package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/props"
)

func runLanStatus(ctx context.Context, session hub.Session, args []string) error {
	return printProperties(session, []propLine{
		{"Gateway", "lan_gateway_ipv4"},
		{"Subnet mask", "lan_subnetmask"},
		{"DHCP enabled", "lan_dhcp_enabled"},
		{"DHCPv4 range start", "lan_dhcpv4_range_start"},
		{"DHCPv4 range end", "lan_dhcpv4_range_end"},
		{"DHCPv4 lease time", "lan_dhcpv4_leasetime"},
		{"DHCPv6 prefix length", "lan_dhcpv6_prefixlength"},
		{"DHCPv6 range start", "lan_dhcpv6_range_start"},
		{"DHCPv6 lease time", "lan_dhcpv6_leasetime"},
		{"Parental controls", "lan_parentalcontrols_enabled"},
	})
}

func runWanStatus(ctx context.Context, session hub.Session, args []string) error {
	err := printProperties(session, []propLine{
		{"Connection type", "wan_conn_type"},
		{"Hostname", "wan_conn_hostname"},
		{"Domain name", "wan_conn_domainname"},
		{"Provisioning mode", "wan_ip_prov_mode"},
		{"MTU", "wan_mtu_size"},
		{"WAN MAC address", "wan_if_macaddr"},
		{"DHCP server", "wan_dhcp_server_ip"},
		{"DHCPv4 lease expires", "wan_dhcp_expire_ipv4"},
	})
	if err != nil {
		return err
	}

	networks, err := props.WanNetworks(session)
	if err != nil {
		return err
	}
	for _, network := range networks {
		fmt.Printf("%-22s %s\n", "Network:", network)
	}

	servers, err := props.DNSServers(session)
	if err != nil {
		return err
	}
	for _, server := range servers {
		fmt.Printf("%-22s %s\n", "DNS server:", server)
	}
	return nil
}
