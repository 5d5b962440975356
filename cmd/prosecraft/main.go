// prosecraft is a terminal writing assistant: grammar, style, tone and
// plagiarism checks with persistent appearance preferences.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prosecraft/prosecraft/cmd/prosecraft/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
