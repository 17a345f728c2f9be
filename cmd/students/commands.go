package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *cli) runMenu(cmd *cobra.Command, args []string) error {
	return c.newApp(cmd).Run(cmd.Context())
}

func (c *cli) runList(cmd *cobra.Command, args []string) error {
	app := c.newApp(cmd)
	app.Load(cmd.Context())
	app.Display()
	return nil
}

func (c *cli) runSearch(cmd *cobra.Command, args []string) error {
	app := c.newApp(cmd)
	app.Load(cmd.Context())
	app.SearchFor(strings.Join(args, " "))
	return nil
}

func (c *cli) runImport(cmd *cobra.Command, args []string) error {
	path := c.cfg.Store.ImportFile
	if len(args) == 1 {
		path = args[0]
	}

	app := c.newApp(cmd)
	app.Load(cmd.Context())
	app.Import(cmd.Context(), path)
	return nil
}
