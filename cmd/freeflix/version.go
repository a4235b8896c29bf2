package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"freeflix/handlers"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "freeflix %s (%s %s/%s)\n", handlers.BuildVersion(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
