package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/history"
)

var (
	decodeFormat    string
	decodeGlob      string
	decodeNoHistory bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [string|-]",
	Short: "Decode a blueprint string to JSON, YAML or TOML",
	Long: `Decode a blueprint string and print the document.

The string is read from the argument, or from stdin when the argument is
"-" or missing. With --glob every matching file is decoded in turn;
failures are reported and the remaining files are still processed.

Successfully decoded strings are added to the history unless --no-history
is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeFormat, "format", "f", "json", "output format (json, yaml, toml)")
	decodeCmd.Flags().StringVar(&decodeGlob, "glob", "", "decode every file matching the pattern (supports **)")
	decodeCmd.Flags().BoolVar(&decodeNoHistory, "no-history", false, "do not record decoded strings")
}

func runDecode(cmd *cobra.Command, args []string) error {
	format, err := blueprint.ParseFormat(decodeFormat)
	if err != nil {
		return err
	}
	if decodeGlob != "" && len(args) > 0 {
		return errors.New("--glob cannot be combined with an argument")
	}

	var hist *history.Store
	if !decodeNoHistory {
		h, store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()
		hist = h
	}

	out := cmd.OutOrStdout()
	codec := blueprint.NewCodec()

	if decodeGlob == "" {
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}
		return decodeOne(cmd, codec, hist, input, format, out)
	}

	paths, err := doublestar.FilepathGlob(decodeGlob, doublestar.WithFilesOnly())
	if err != nil {
		return fmt.Errorf("invalid glob %q: %w", decodeGlob, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %q", decodeGlob)
	}

	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err == nil {
			fmt.Fprintf(out, "==> %s <==\n", path)
			err = decodeOne(cmd, codec, hist, string(data), format, out)
		}
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(paths))
	}
	return nil
}

func decodeOne(cmd *cobra.Command, codec *blueprint.Codec, hist *history.Store, input string, format blueprint.Format, out io.Writer) error {
	doc, err := codec.Decode(input)
	if err != nil {
		return err
	}

	text, err := blueprint.Export(doc, format)
	if err != nil {
		return err
	}
	if _, err := out.Write(text); err != nil {
		return err
	}

	if hist != nil && hist.Record(cmd.Context(), strings.TrimSpace(input)) {
		logger.Debug("Recorded blueprint", zap.Int("entries", hist.Len()))
	}
	return nil
}

// readInput returns the argument, or stdin for "-" and no argument
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
