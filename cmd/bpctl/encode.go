package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/BlueprintStudio/internal/domain/blueprint"
)

var encodeFrom string

var encodeCmd = &cobra.Command{
	Use:   "encode [file|-]",
	Short: "Encode a JSON, JSONC or YAML document into a blueprint string",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVar(&encodeFrom, "from", "json", "input format (json, jsonc, yaml)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	format, err := blueprint.ParseFormat(encodeFrom)
	if err != nil {
		return err
	}

	var data []byte
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	doc, err := blueprint.Import(data, format)
	if err != nil {
		return &blueprint.EncodeError{Err: err}
	}
	encoded, err := blueprint.Encode(doc)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), encoded)
	return err
}
