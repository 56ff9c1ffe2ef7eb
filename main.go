package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wordbench/internal/extractcmd"
	"github.com/dtnitsch/wordbench/internal/runcmd"
)

func main() {
	app := &cli.App{
		Name:  "wordbench",
		Usage: "benchmark fluent vs declarative word statistics over a document corpus",
		Commands: []*cli.Command{
			runcmd.Command(),
			extractcmd.Command(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
