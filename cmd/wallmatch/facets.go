package main

import (
	"context"
	"time"

	"github.com/Veraticus/wallmatch/internal/cli"
	"github.com/spf13/cobra"
)

func facetsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "facets",
		Aliases: []string{"catalog"},
		Short:   "List the categories and colors the service accepts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cli.ParseOutputFormat(output)
			if err != nil {
				return err
			}

			settings, err := loadSettings()
			if err != nil {
				return err
			}
			client, err := newClient(settings)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			return cli.WriteCatalog(cmd.OutOrStdout(), format, client.Catalog(ctx))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format (text, json, yaml)")

	return cmd
}
