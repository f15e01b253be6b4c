package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/props"
)

func runDeviceList(ctx context.Context, session hub.Session, args []string) error {
	devices, err := props.Devices(session)
	if err != nil {
		return err
	}
	for _, device := range devices {
		fmt.Println(device)
	}
	return nil
}
