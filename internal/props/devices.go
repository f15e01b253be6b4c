package props

import (
	"fmt"
	"sort"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/snmp"
)

const (
	deviceMACPrefix       = "1.3.6.1.4.1.4115.1.20.1.1.2.4.2.1.4.200.1.4"
	deviceConnectedPrefix = "1.3.6.1.4.1.4115.1.20.1.1.2.4.2.1.14.200.1.4"
	deviceNamePrefix      = "1.3.6.1.4.1.4115.1.20.1.1.2.4.2.1.3.200.1.4"
)

// Device is one LAN client known to the hub. The hub remembers recently
// disconnected devices too.
type Device struct {
	IPv4      string
	MAC       string
	Name      string
	Connected bool
}

func (d Device) String() string {
	state := "disconnected"
	if d.Connected {
		state = "connected"
	}
	name := d.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%-15s %s %-12s %s", d.IPv4, d.MAC, state, name)
}

// Devices lists the clients the hub knows about, sorted by IP address.
// Each device costs two extra round trips for its state and name, so this
// is slow on a loaded hub.
func Devices(s hub.Session) ([]Device, error) {
	walked, err := s.SNMPWalk(deviceMACPrefix)
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(walked))
	for oid, mac := range walked {
		if len(oid) <= len(deviceMACPrefix)+1 {
			continue
		}
		device := Device{IPv4: oid[len(deviceMACPrefix)+1:]}
		device.MAC, _ = snmp.DecodeMAC(mac)

		connected, err := s.SNMPGet(deviceConnectedPrefix + "." + device.IPv4)
		if err != nil {
			return nil, err
		}
		device.Connected = connected == "1"

		name, err := s.SNMPGet(deviceNamePrefix + "." + device.IPv4)
		if err != nil {
			return nil, err
		}
		if name != "unknown" {
			device.Name = name
		}
		devices = append(devices, device)
	}

	sort.Slice(devices, func(i, j int) bool { return devices[i].IPv4 < devices[j].IPv4 })
	return devices, nil
}
