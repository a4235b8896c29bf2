package main

import (
	"github.com/spf13/cobra"

	"freeflix/config"
)

type rootOptions struct {
	configPath string
}

func (o *rootOptions) manager() *config.Manager {
	return config.NewManager(o.configPath)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           config.Name,
		Short:         "Movie and TV catalog with a multi-source embedded player",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./freeflix.{yaml,json,toml})")

	root.AddCommand(
		newServeCmd(opts),
		newSourcesCmd(),
		newResolveCmd(),
		newClearCacheCmd(opts),
		newVersionCmd(),
	)
	return root
}
