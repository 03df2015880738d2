package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/moonrockz/gherkin/pkg/gherkin"
	"github.com/moonrockz/gherkin/pkg/wire"
)

type tokensHandler struct {
	fs     afero.Fs
	format string
}

func newTokensCommand() *cobra.Command {
	me := &tokensHandler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "print the raw token stream of a feature file",
	}
	cmd.Flags().StringVar(&me.format, "format", "text", "output format: text, json")
	cmd.Args = cobra.ExactArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.run(cmd.Context(), cmd.OutOrStdout(), args[0])
	}

	return cmd
}

func (me *tokensHandler) run(ctx context.Context, out io.Writer, path string) error {
	data, err := afero.ReadFile(me.fs, path)
	if err != nil {
		return errors.Errorf("reading file: %w", err)
	}

	tokens, err := gherkin.Tokenize(ctx, gherkin.Source{URI: path, Data: string(data)})
	if err != nil {
		return err
	}

	switch me.format {
	case "text":
		for _, t := range tokens {
			fmt.Fprintf(out, "(%s) %s\n", t.Location, t)
		}
	case "json":
		encoded, err := wire.MarshalTokens(tokens)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))
	default:
		return errors.Errorf("unknown format %q", me.format)
	}
	return nil
}
