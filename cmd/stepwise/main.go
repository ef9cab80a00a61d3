// SPDX-License-Identifier: MIT

// Command stepwise runs an algorithm over a small structure and replays its
// recorded snapshots in the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/stepwise/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stepwise: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}
