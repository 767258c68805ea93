package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	serialscopecmder "github.com/papercomputeco/serialscope/cmd/serialscope"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := serialscopecmder.NewSerialscopeCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
