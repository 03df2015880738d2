package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/gherkin"
	"github.com/moonrockz/gherkin/pkg/wire"
	"github.com/moonrockz/gherkin/pkg/wire/legacy"
)

type parseHandler struct {
	fs     afero.Fs
	format string
}

func newParseCommand() *cobra.Command {
	me := &parseHandler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "parse [patterns...]",
		Short: "parse feature files and print their documents",
		Long:  "Parse feature files (doublestar patterns like '**/*.feature' are supported) and print each document in the selected output format.",
	}
	cmd.Flags().StringVar(&me.format, "format", "typed", "output format: typed, legacy, pretty")
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.run(cmd.Context(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *parseHandler) run(ctx context.Context, out io.Writer, patterns []string) error {
	files, err := expandPatterns(me.fs, patterns)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, file := range files {
		if err := me.parseFile(ctx, out, file); err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

func (me *parseHandler) parseFile(ctx context.Context, out io.Writer, path string) error {
	data, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	doc, err := gherkin.Parse(ctx, gherkin.Source{URI: path, Data: string(data)})
	if err != nil {
		return err
	}

	switch me.format {
	case "typed":
		encoded, err := wire.Marshal(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
	case "legacy":
		encoded, err := legacy.Encode(doc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
	case "pretty":
		text, err := gherkin.Write(ctx, doc)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
	default:
		return errors.Errorf("unknown format %q", me.format)
	}
	return nil
}

// expandPatterns resolves each argument either as a literal path or, when it
// contains glob metacharacters, as a doublestar pattern.
func expandPatterns(fsys afero.Fs, patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.Glob(afero.NewIOFS(fsys), pattern)
		if err != nil {
			return nil, errors.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, errors.Errorf("pattern %q matched no files", pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}
