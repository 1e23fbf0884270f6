package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/witgen/gen"
	"github.com/teranos/witgen/output"
)

// WatchCmd regenerates whenever project sources change
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate WIT files when project sources change",
	Long: `Run a generation, then watch the root and every project source directory.
Bursts of changes to .go files, build manifests or the config file trigger
one regeneration after a short quiet period. Changes inside the api
directory are ignored. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func(ctx context.Context) error {
		// Pick up config file edits between runs
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded

		result, err := gen.Run(ctx, cfg, output.Disk{})
		if err != nil {
			return err
		}
		printResult(result)
		return nil
	}

	if err := regenerate(ctx); err != nil {
		pterm.Warning.Println("Initial generation failed, watching for fixes")
	}

	watcher, err := gen.NewWatcher(cfg, regenerate)
	if err != nil {
		return err
	}
	defer watcher.Close()

	pterm.Info.Printfln("Watching %s (Ctrl+C to stop)", cfg.Root)
	return watcher.Watch(ctx)
}
