package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/gherkin"
)

type fmtHandler struct {
	fs    afero.Fs
	write bool
}

func newFmtCommand() *cobra.Command {
	me := &fmtHandler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "fmt [patterns...]",
		Short: "rewrite feature files in canonical formatting",
		Long:  "Re-parse feature files and print (or rewrite with --write) their canonical form. Indentation honors indent_size from .editorconfig when one applies.",
	}
	cmd.Flags().BoolVarP(&me.write, "write", "w", false, "rewrite files in place instead of printing")
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.run(cmd.Context(), cmd.OutOrStdout(), args)
	}

	return cmd
}

func (me *fmtHandler) run(ctx context.Context, out io.Writer, patterns []string) error {
	files, err := expandPatterns(me.fs, patterns)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, file := range files {
		if err := me.formatFile(ctx, out, file); err != nil {
			result = multierror.Append(result, errors.Errorf("%s: %w", file, err))
		}
	}
	return result.ErrorOrNil()
}

func (me *fmtHandler) formatFile(ctx context.Context, out io.Writer, path string) error {
	data, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	doc, err := gherkin.Parse(ctx, gherkin.Source{URI: path, Data: string(data)})
	if err != nil {
		return err
	}

	text, err := gherkin.Write(ctx, doc, gherkin.WithIndent(indentFor(path)))
	if err != nil {
		return err
	}

	if me.write {
		if err := afero.WriteFile(me.fs, path, []byte(text), 0o644); err != nil {
			return errors.Errorf("writing file: %w", err)
		}
		return nil
	}
	fmt.Fprint(out, text)
	return nil
}

// indentFor resolves the indentation unit for a file from .editorconfig,
// defaulting to two spaces.
func indentFor(path string) string {
	def, err := editorconfig.GetDefinitionForFilename(path)
	if err != nil || def == nil {
		return "  "
	}
	if def.IndentStyle == editorconfig.IndentStyleTab {
		return "\t"
	}
	if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 && n <= 8 {
		return strings.Repeat(" ", n)
	}
	return "  "
}
