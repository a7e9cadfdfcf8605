package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/wallmatch/internal/cli"
	"github.com/Veraticus/wallmatch/internal/common"
	"github.com/Veraticus/wallmatch/internal/config"
	"github.com/Veraticus/wallmatch/internal/encoder"
	"github.com/Veraticus/wallmatch/internal/flow"
	"github.com/Veraticus/wallmatch/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// textWidth is the wrap width for text results.
const textWidth = 80

type matchOptions struct {
	image      string
	output     string
	saveDir    string
	categories []string
	colors     []string
	single     bool
	quiet      bool
	noInput    bool
}

func matchCmd() *cobra.Command {
	var opts matchOptions

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match artworks to a wall photo",
		Long: `Send a wall photo with the chosen categories and colors to the matching service
and print the suggested artworks.

Anything not given as a flag is asked for interactively unless --no-input is set.`,
		Example: `  wallmatch match --image ~/walls/living-room.jpg --category classical --color Blue
  wallmatch match -i wall.png -c aesthetic -c impressive --color Red --output json
  wallmatch match -i wall.png -c classical --color Green --save-composite ~/Downloads`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			if opts.single {
				settings.Mode = model.ModeSingle
			}

			client, err := newClient(settings)
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
			ctx := handler.HandleInterrupts(cmd.Context())

			err = runMatch(ctx, client, afero.NewOsFs(), settings, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if handler.WasInterrupted() {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.image, "image", "i", "", "path to the wall photo")
	cmd.Flags().StringSliceVarP(&opts.categories, "category", "c", nil, "artwork category (repeatable)")
	cmd.Flags().StringSliceVar(&opts.colors, "color", nil, "dominant color (repeatable)")
	cmd.Flags().BoolVar(&opts.single, "single", false, "send exactly one category and one color")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "text", "output format (text, json, yaml, html)")
	cmd.Flags().StringVar(&opts.saveDir, "save-composite", "", "directory to save the composite preview into")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide the progress spinner")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "never prompt for missing values")

	return cmd
}

// runMatch drives one submission through the flow controller.
func runMatch(ctx context.Context, client backend, fs afero.Fs, settings config.Settings, opts matchOptions, in io.Reader, out, errOut io.Writer) error {
	format, err := cli.ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}

	single := settings.Mode == model.ModeSingle
	if single && (len(distinct(opts.categories)) > 1 || len(distinct(opts.colors)) > 1) {
		return fmt.Errorf("%w: single mode takes one category and one color", common.ErrInvalidConfig)
	}

	if !opts.noInput {
		if err := promptMissing(ctx, client, &opts, single, in, errOut); err != nil {
			return err
		}
	}

	view := cli.NewProgressView(errOut, opts.quiet)
	flowOpts := flow.OptionsFrom(settings)
	flowOpts.Fs = fs
	ctrl := flow.New(newStore(settings), encoder.New(fs), client, view, flowOpts)

	if opts.image != "" {
		if err := ctrl.SelectFile(config.ExpandPath(opts.image)); err != nil {
			return err
		}
	}
	for _, category := range distinct(opts.categories) {
		ctrl.Toggle(model.FacetCategory, category)
	}
	for _, color := range distinct(opts.colors) {
		ctrl.Toggle(model.FacetColor, color)
	}

	if err := ctrl.Submit(ctx); err != nil {
		return common.NewUserError("match failed", err)
	}

	resp, _ := ctrl.Response()
	result := cli.Result{
		Response: resp,
		Nodes:    ctrl.Screen().Results,
	}

	if opts.saveDir != "" {
		path, err := ctrl.SaveComposite(config.ExpandPath(opts.saveDir))
		switch {
		case errors.Is(err, common.ErrNoComposite):
			slog.Warn("No composite preview to save")
		case err != nil:
			return err
		default:
			result.CompositePath = path
		}
	}

	return cli.WriteResult(out, format, result, textWidth)
}

// promptMissing asks for whatever the flags left out.
func promptMissing(ctx context.Context, client backend, opts *matchOptions, single bool, in io.Reader, errOut io.Writer) error {
	if opts.image != "" && len(opts.categories) > 0 && len(opts.colors) > 0 {
		return nil
	}

	prompter := cli.NewPrompter(in, errOut)

	if opts.image == "" {
		image, err := prompter.AskImage(ctx)
		if err != nil {
			return fmt.Errorf("failed to read image path: %w", err)
		}
		opts.image = image
	}

	if len(opts.categories) > 0 && len(opts.colors) > 0 {
		return nil
	}

	catalog := client.Catalog(ctx)

	if len(opts.categories) == 0 {
		values, err := prompter.AskFacet(ctx, model.FacetCategory, catalog, single)
		if err != nil {
			return fmt.Errorf("failed to read categories: %w", err)
		}
		opts.categories = values
	}

	if len(opts.colors) == 0 {
		values, err := prompter.AskFacet(ctx, model.FacetColor, catalog, single)
		if err != nil {
			return fmt.Errorf("failed to read colors: %w", err)
		}
		opts.colors = values
	}

	return nil
}

// distinct drops repeated flag values, keeping first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
