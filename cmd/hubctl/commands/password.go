package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/secrets"
)

func runPasswordSet(ctx context.Context, args []string) error {
	if err := secrets.StorePassword(args[0]); err != nil {
		return err
	}
	fmt.Println("Hub password stored")
	return nil
}

func runPasswordClear(ctx context.Context, args []string) error {
	if err := secrets.ClearPassword(); err != nil {
		return err
	}
	fmt.Println("Hub password cleared")
	return nil
}
