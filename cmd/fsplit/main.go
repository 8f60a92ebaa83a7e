package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/sokinpui/fsplit/cli"
	"github.com/sokinpui/fsplit/fsplit"
	"github.com/sokinpui/fsplit/internal/tui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	app, err := fsplit.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := app.Execute(ctx)
	if err != nil {
		var detailed *fsplit.DetailedError
		if errors.As(err, &detailed) {
			fmt.Fprintf(os.Stderr, "%s\n", detailed.Stack)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		app.Close()
		os.Exit(1)
	}

	fmt.Println(tui.RenderSummary(summary))
}
