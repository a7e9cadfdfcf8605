package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Veraticus/wallmatch/internal/config"
	"github.com/Veraticus/wallmatch/internal/encoder"
	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/tui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type tuiOptions struct {
	saveDir string
	noHelp  bool
	mouse   bool
}

func tuiCmd() *cobra.Command {
	var opts tuiOptions

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive form",
		Long: `Open the full-screen form: choose a wall photo, pick categories and colors,
and browse the matched artworks. Press d on the results to download the preview.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.saveDir, "save-dir", ".", "directory for downloaded previews")
	cmd.Flags().BoolVar(&opts.noHelp, "no-help", false, "hide the key help footer")
	cmd.Flags().BoolVar(&opts.mouse, "mouse", false, "enable mouse events")

	return cmd
}

func runTUI(ctx context.Context, opts tuiOptions) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	restoreLogs, err := redirectLogs(openLogFile, os.Stderr)
	if err != nil {
		return err
	}
	defer restoreLogs()

	client, err := newClient(settings)
	if err != nil {
		return err
	}

	slog.Info("Starting form", "api", settings.BaseURL, "mode", settings.Mode)

	fs := afero.NewOsFs()
	bridge := tui.NewBridge()
	flowOpts := flow.OptionsFrom(settings)
	flowOpts.Fs = fs
	ctrl := flow.New(newStore(settings), encoder.New(fs), client, bridge, flowOpts)

	return tui.Run(ctx, ctrl, bridge,
		tui.WithCatalogSource(client),
		tui.WithSaveDir(config.ExpandPath(opts.saveDir)),
		tui.WithHelp(!opts.noHelp),
		tui.WithMouse(opts.mouse),
	)
}
