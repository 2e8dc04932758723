// Package commands implements the rust-swig CLI commands.
package commands

import (
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ecumene/rust-swig/config"
	"github.com/ecumene/rust-swig/jni"
	"github.com/ecumene/rust-swig/logger"
	"github.com/ecumene/rust-swig/rules"
	"github.com/ecumene/rust-swig/typemap"
)

var (
	cfgFile string
	cfg     *config.Config
)

// BindFlags adds the global flags to the root command.
func BindFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: ./rust-swig.toml)")
	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
}

// Setup loads configuration and initializes the global logger. Wired as
// the root command's persistent pre-run.
func Setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	verbosity, _ := cmd.Flags().GetCount("verbose")
	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return err
	}
	return nil
}

// buildEngine creates an engine seeded with the built-in JNI rules and
// the rule files from configuration.
func buildEngine() (*typemap.TypeMap, error) {
	tm := typemap.New(logger.Logger)
	tm.SetStepBudget(cfg.Generator.StepBudget)
	jni.Setup(tm)

	for _, path := range cfg.Generator.RuleFiles {
		batch, err := rules.Load(path, cfg.Generator.PointerWidth)
		if err != nil {
			return nil, err
		}
		report := tm.Merge(filepath.Base(path), batch)
		reportConflicts(report)
	}
	return tm, nil
}

func reportConflicts(report *typemap.MergeReport) {
	for _, conflict := range report.Conflicts {
		pterm.Warning.Println(conflict.Error())
	}
}
