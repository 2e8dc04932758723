package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecumene/rust-swig/typemap"
	"github.com/ecumene/rust-swig/types"
)

var mapIncoming bool

// MapCmd resolves the foreign counterpart of an internal type.
var MapCmd = &cobra.Command{
	Use:   "map <type>",
	Short: "Resolve the foreign counterpart of an internal type",
	Long: `Resolve which foreign-side type an internal type crosses the boundary
as. The outgoing direction (the default) maps a value returned to foreign
code; --incoming maps a received argument.

Examples:
  rust-swig map 'bool'
  rust-swig map 'jboolean' --incoming`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func init() {
	MapCmd.Flags().BoolVar(&mapIncoming, "incoming", false, "Map the incoming direction (foreign argument to internal type)")
}

func runMap(cmd *cobra.Command, args []string) error {
	tm, err := buildEngine()
	if err != nil {
		return err
	}

	dir := typemap.Outgoing
	if mapIncoming {
		dir = typemap.Incoming
	}

	h := tm.FindOrAlloc(types.Parse(args[0]))
	fti, err := tm.MapToForeign(h, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (via %s)\n", h.Name, fti.Name, fti.Node.Name)
	return nil
}
