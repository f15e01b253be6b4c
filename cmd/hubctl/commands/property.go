package commands

import (
	"context"
	"fmt"

	"github.com/cablekit/hubctl/internal/hub"
	"github.com/cablekit/hubctl/internal/props"
)

func runProperties(ctx context.Context, args []string) error {
	for _, name := range props.Names() {
		fmt.Println(name)
	}
	return nil
}

func runGetProperty(ctx context.Context, session hub.Session, args []string) error {
	values, err := props.GetAll(session, args)
	if err != nil {
		return err
	}
	for _, value := range values {
		fmt.Println(value)
	}
	return nil
}

func runSetProperty(ctx context.Context, session hub.Session, args []string) error {
	name, value := args[0], args[1]
	old, err := props.Set(session, name, value)
	if err != nil {
		return err
	}
	fmt.Printf("Changed %s from %s to %s\n", name, old, value)
	return nil
}
