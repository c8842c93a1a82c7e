// Package schema implements the `aqua-host schema` command.
package schema

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/aquabsd/aqua-go/config"
)

// Command returns the `schema` command.
func Command() *cli.Command {
	return &cli.Command{
		Name:   "schema",
		Usage:  "print the JSON schema of the host configuration file",
		Action: Run(),
	}
}

// Run the `schema` command.
func Run() cli.ActionFunc {
	return func(c *cli.Context) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, string(data))
		return err
	}
}
