package commands

import (
	"fmt"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ecumene/rust-swig/rules"
)

// RulesCmd loads rule files on top of the built-in rules and reports
// what they contribute to the graph.
var RulesCmd = &cobra.Command{
	Use:   "rules <file>...",
	Short: "Check conversion-rule files and show graph statistics",
	Long: `Load conversion-rule files (TOML or YAML) on top of the built-in JNI
rules and report what each file contributes to the conversion graph.

Conflicting rules (an edge for a type pair that already has one) are kept
out in favor of the earlier rule and reported as warnings.

Examples:
  rust-swig rules my_rules.toml
  rust-swig rules base.toml overrides.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRules,
}

func runRules(cmd *cobra.Command, args []string) error {
	tm, err := buildEngine()
	if err != nil {
		return err
	}

	rows := pterm.TableData{{"File", "Types", "Rules", "Conflicts"}}
	for _, path := range args {
		batch, err := rules.Load(path, cfg.Generator.PointerWidth)
		if err != nil {
			return err
		}
		report := tm.Merge(filepath.Base(path), batch)
		reportConflicts(report)
		rows = append(rows, []string{
			filepath.Base(path),
			fmt.Sprintf("%d", report.NodesAdded),
			fmt.Sprintf("%d", report.EdgesAdded),
			fmt.Sprintf("%d", len(report.Conflicts)),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}
	pterm.Println()
	pterm.Success.Printf("Graph: %d types, %d conversion rules\n", tm.NodeCount(), tm.EdgeCount())
	return nil
}
