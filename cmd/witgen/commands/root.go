// Package commands implements the witgen command line.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/witgen/config"
	"github.com/teranos/witgen/errors"
	"github.com/teranos/witgen/logger"
)

var (
	rootDir    string
	configPath string

	// Loaded by PersistentPreRunE for every command except version
	cfg *config.Config
)

// flagKeys maps command line flags to the configuration keys they override
var flagKeys = map[string]string{
	"api-dir":    "api_dir",
	"loader":     "source.loader",
	"collisions": "naming.collisions",
	"tracking":   "closure.tracking",
	"json-log":   "log.json",
}

// RootCmd generates WIT files when run without a subcommand
var RootCmd = &cobra.Command{
	Use:   "witgen",
	Short: "Generate WIT interfaces and world manifests from Go process sources",
	Long: `witgen scans the subdirectories of a root for process projects, reads the
annotated Go source of each one and writes a WIT interface per process type
into the api directory. Every world manifest found there is then rewritten
to export the generated interfaces.

Annotations:
  //hyper:process wit_world="<world>"   on the process state type
  //hyper:remote, //hyper:local, //hyper:http   on exported methods
  //hyper:variant                       on a struct or enum type

Examples:
  witgen                          # Generate for the current directory
  witgen --root ./apps            # Generate for another root
  witgen --dry-run                # Print files instead of writing them
  witgen check                    # Fail when api/ is out of date
  witgen inspect --format json    # Dump the interface model
  witgen watch -v                 # Regenerate on every source change`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVarP(&rootDir, "root", "r", ".", "Directory whose subdirectories are scanned for projects")
	flags.StringVarP(&configPath, "config", "c", "", "Config file (default: <root>/"+config.FileName+" when present)")
	flags.String("api-dir", config.DefaultAPIDir, "Output directory, relative to the root unless absolute")
	flags.String("loader", config.LoaderParser, "Source loader: parser or packages")
	flags.String("collisions", config.CollisionsOverwrite, "Declaration name collisions: overwrite, report or reject")
	flags.String("tracking", config.TrackingTextual, "Type closure tracking: textual or structural")
	flags.Bool("json-log", false, "Emit JSON logs")
	flags.CountP("verbose", "v", "Increase log verbosity (-v info, -vv debug)")

	RootCmd.Flags().Bool("dry-run", false, "Print generated files to stdout instead of writing them")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(WatchCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonLog, _ := cmd.Flags().GetBool("json-log")

	if cmd.Name() == VersionCmd.Name() {
		return logger.Initialize(jsonLog, verbosity)
	}

	loaded, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg = loaded

	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.ComponentLogger("witgen.cli").Debugw("Configuration loaded",
		logger.FieldPath, cfg.Root,
		"api_dir", cfg.APIPath(),
		"level", logger.LevelName(verbosity))
	return nil
}

// loadConfig layers changed command line flags over defaults, the config
// file and WITGEN_* environment variables.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v, err := config.NewViper(rootDir, configPath)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, v); err != nil {
		return nil, err
	}

	loaded, err := config.LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	if err := loaded.Validate(); err != nil {
		return nil, errors.WithHint(err, "see witgen --help for accepted values")
	}
	return loaded, nil
}

func applyFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	if flags.Changed("root") {
		v.Set("root", rootDir)
	}
	for flag, key := range flagKeys {
		f := flags.Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "failed to bind --%s", flag)
		}
	}
	return nil
}
