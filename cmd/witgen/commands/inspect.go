package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/gen"
)

// InspectCmd prints the interface model without writing files
var InspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the interfaces that would be generated",
	Long: `Build every interface a generation would write and print its functions
and included types as YAML or JSON. Nothing is written.

Examples:
  witgen inspect
  witgen inspect --format json | jq '.[].functions[].name'`,
	RunE: runInspect,
}

func init() {
	InspectCmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	RootCmd.AddCommand(InspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	models, err := gen.Inspect(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(models)
	case "json":
		data, err = json.MarshalIndent(models, "", "  ")
		data = append(data, '\n')
	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("unknown format %q", format), errors.ErrInvalidConfig),
			"use --format yaml or --format json")
	}
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", format)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
	return err
}
