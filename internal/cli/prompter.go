package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/wallmatch/internal/model"
)

// maxAttempts bounds re-prompts after invalid answers.
const maxAttempts = 3

// Prompt errors.
var (
	ErrNoChoice        = errors.New("no value chosen")
	ErrUnknownChoice   = errors.New("unknown value")
	ErrTooManyChoices  = errors.New("choose exactly one value")
	ErrTooManyAttempts = errors.New("too many invalid answers")
)

// Prompter asks for the form fields a command was not given as flags.
type Prompter struct {
	reader *AnswerReader
	writer io.Writer
}

// NewPrompter creates a prompter over reader and writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewAnswerReader(reader),
		writer: writer,
	}
}

// AskImage asks for the wall image path until a non-empty answer is given.
func (p *Prompter) AskImage(ctx context.Context) (string, error) {
	for range maxAttempts {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Wall image path")); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatWarning("Please upload a wall image")); err != nil {
			return "", fmt.Errorf("failed to write warning: %w", err)
		}
	}
	return "", ErrTooManyAttempts
}

// AskFacet lists the catalog values for kind and reads a choice.
func (p *Prompter) AskFacet(ctx context.Context, kind model.FacetKind, catalog model.Catalog, single bool) ([]string, error) {
	options := catalog.Values(kind)

	var b strings.Builder
	heading := FormatTitle(facetHeading(kind, single))
	if kind == model.FacetColor {
		heading = FormatPaletteTitle(facetHeading(kind, single))
	}
	b.WriteString(heading + "\n")
	for i, opt := range options {
		label := opt
		if hex := catalog.HexFor(opt); hex != "" {
			label = FormatSwatch(opt, hex)
		}
		fmt.Fprintf(&b, "  %s %s\n", BoldStyle.Render(fmt.Sprintf("[%d]", i+1)), label)
	}
	if _, err := fmt.Fprint(p.writer, b.String()); err != nil {
		return nil, fmt.Errorf("failed to write options: %w", err)
	}

	for range maxAttempts {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Choice")); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return nil, err
		}

		values, err := ParseChoices(line, options, single)
		if err == nil {
			return values, nil
		}

		if _, werr := fmt.Fprintln(p.writer, FormatWarning(err.Error())); werr != nil {
			return nil, fmt.Errorf("failed to write warning: %w", werr)
		}
	}
	return nil, ErrTooManyAttempts
}

func facetHeading(kind model.FacetKind, single bool) string {
	noun := "categories"
	if kind == model.FacetColor {
		noun = "colors"
	}
	if single {
		return "Choose one of the " + noun
	}
	return "Choose " + noun + " (comma separated)"
}

// ParseChoices resolves a comma-separated answer of option numbers or
// names against options. Names match case-insensitively; duplicates are dropped.
func ParseChoices(input string, options []string, single bool) ([]string, error) {
	var values []string
	for _, field := range strings.Split(input, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		value, ok := resolveChoice(field, options)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownChoice, field)
		}
		if !slices.Contains(values, value) {
			values = append(values, value)
		}
	}

	switch {
	case len(values) == 0:
		return nil, ErrNoChoice
	case single && len(values) > 1:
		return nil, ErrTooManyChoices
	default:
		return values, nil
	}
}

func resolveChoice(field string, options []string) (string, bool) {
	if n, err := strconv.Atoi(field); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}

	for _, opt := range options {
		if strings.EqualFold(opt, field) {
			return opt, true
		}
	}
	return "", false
}
