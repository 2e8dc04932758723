package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ecumene/rust-swig/cmd/rust-swig/commands"
	"github.com/ecumene/rust-swig/logger"
)

var rootCmd = &cobra.Command{
	Use:   "rust-swig",
	Short: "rust-swig - type conversion engine for foreign language bindings",
	Long: `rust-swig resolves type conversions for foreign language bindings: it
maintains a graph of conversion rules between internal types, finds or
speculatively builds conversion paths, and maps internal types onto
their foreign counterparts.

Available commands:
  rules   - Check conversion-rule files and show graph statistics
  convert - Resolve a conversion between two internal types
  map     - Resolve the foreign counterpart of an internal type

Examples:
  rust-swig rules my_rules.toml        # Validate and merge rule files
  rust-swig convert 'i32' 'jint'       # Print conversion glue code
  rust-swig map 'bool'                 # Show the foreign counterpart`,
	PersistentPreRunE: commands.Setup,
}

func init() {
	commands.BindFlags(rootCmd)

	rootCmd.AddCommand(commands.RulesCmd)
	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.MapCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
