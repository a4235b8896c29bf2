package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"freeflix/services/metadata"
)

func newClearCacheCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove cached TMDB responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := opts.manager().Load()
			if err != nil {
				return err
			}
			return clearCache(cmd, afero.NewOsFs(), settings.Metadata.CacheDir)
		},
	}
}

func clearCache(cmd *cobra.Command, fs afero.Fs, cacheDir string) error {
	svc := metadata.NewService(metadata.Config{CacheDir: cacheDir, Demo: true, Fs: fs})
	if err := svc.ClearCache(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "metadata cache in %s cleared\n", cacheDir)
	return nil
}
