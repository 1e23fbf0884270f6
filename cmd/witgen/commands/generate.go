package commands

import (
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/witgen/gen"
	"github.com/teranos/witgen/output"
)

// GenerateCmd is the explicit form of the root command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate WIT interfaces and update world manifests",
	Long: `Run the two generation phases: write one interface file per annotated
process type, then rewrite every world manifest in the api directory so it
exports exactly the generated interfaces.`,
	RunE: runGenerate,
}

func init() {
	GenerateCmd.Flags().Bool("dry-run", false, "Print generated files to stdout instead of writing them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var sink output.Sink = output.Disk{}
	if dryRun {
		sink = output.Printer{Out: cmd.OutOrStdout()}
	}

	result, err := gen.Run(cmd.Context(), cfg, sink)
	if err != nil {
		return err
	}

	if dryRun {
		pterm.Warning.Println("Dry run: nothing was written")
		return nil
	}
	printResult(result)
	return nil
}

func printResult(result *gen.Result) {
	if len(result.Projects) == 0 {
		pterm.Info.Printfln("No projects found under %s", cfg.Root)
		return
	}

	for _, g := range result.Interfaces {
		pterm.Success.Printfln("Generated %s (%s, %d functions, %d types)",
			relative(g.Path), g.Project, g.Functions, g.Types)
	}
	for _, m := range result.Manifests {
		pterm.Success.Printfln("Updated world %s (%d exports)", relative(m), len(result.Exports))
	}
	if len(result.Interfaces) == 0 {
		pterm.Info.Printfln("No exported functions in %d project(s)", len(result.Projects))
	}
}

// relative shortens path for display when it lies under the working directory
func relative(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
