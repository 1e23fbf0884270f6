package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/witgen/gen"
)

// CheckCmd checks that the api directory matches the sources
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated WIT files are up to date",
	Long: `Generate into a temporary copy of the api directory and compare the
result with the files on disk. Nothing under the root is modified.

Exit codes:
  0 - Files are up to date
  1 - Files are out of date (diff shown)
  2 - Error during check

Examples:
  witgen check
  witgen check --root ./apps`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	pterm.Info.Println("Checking generated WIT files...")

	result, err := gen.Check(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if result.UpToDate {
		pterm.Success.Println("WIT files are up to date")
		return nil
	}

	pterm.Error.Printfln("%d file(s) out of date", len(result.Differences))
	for _, d := range result.Differences {
		if d.New {
			pterm.Printfln("\n%s (missing):", d.File)
		} else {
			pterm.Printfln("\n%s:", d.File)
		}
		fmt.Fprint(cmd.OutOrStdout(), d.Diff)
	}

	return result.Err()
}
