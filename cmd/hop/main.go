package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/macropower/hop/internal/cli"
	"github.com/macropower/hop/pkg/version"
)

func main() {
	err := cli.Execute(context.Background(),
		fang.WithVersion(version.Summary()),
		fang.WithCommit(version.Revision),
		fang.WithErrorHandler(cli.ErrorHandler),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}
