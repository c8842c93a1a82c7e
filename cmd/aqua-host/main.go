// Command aqua-host runs aqua guest modules on a headless reference host.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aquabsd/aqua-go/internal/cmd/run"
	"github.com/aquabsd/aqua-go/internal/cmd/schema"
)

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "set logging `level` to debug, info, warn or error",
			Value:   "info",
			EnvVars: []string{"AQUA_LOG_LEVEL"},
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "aqua-host",
		Usage:     "run aqua guests",
		UsageText: "aqua-host [global options] command [command options] [arguments...]",
		Flags:     flags(),
		Commands: []*cli.Command{
			run.Command(),
			schema.Command(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
