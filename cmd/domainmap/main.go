package main

import (
	"os"
	"time"

	"github.com/yndnr/domainmap/internal/cli/command"
	"github.com/yndnr/domainmap/internal/infra/shutdown"
)

const shutdownTimeout = 5 * time.Second

func main() {
	h := shutdown.NewHandler(shutdownTimeout)
	go func() {
		if err := h.Wait(); err != nil {
			command.PrintError("shutdown: %v", err)
		}
		os.Exit(130)
	}()

	app := command.App()
	command.SetShutdown(app, h)

	if err := app.Run(os.Args); err != nil {
		command.PrintError("%v", err)
		os.Exit(1)
	}
}
