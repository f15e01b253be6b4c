package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/props"
)

func runInfo(ctx context.Context, session hub.Session, args []string) error {
	return printProperties(session, []propLine{
		{"Name", "name"},
		{"Serial number", "serial_number"},
		{"Hardware version", "hardware_version"},
		{"Firmware version", "firmware_version"},
		{"Bootcode version", "bootcode_version"},
		{"Customer ID", "customer_id"},
		{"Language", "language"},
		{"Current time", "current_time"},
		{"Network access", "network_access"},
		{"TOD status", "docsis_base_tod_status"},
	})
}

type propLine struct {
	label string
	name  string
}

func printProperties(session hub.Session, lines []propLine) error {
	for _, line := range lines {
		value, err := props.Get(session, line.name)
		if err != nil {
			return err
		}
		fmt.Printf("%-22s %s\n", line.label+":", value)
	}
	return nil
}
