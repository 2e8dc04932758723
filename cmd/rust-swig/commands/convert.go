package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecumene/rust-swig/types"
)

var (
	convertVar string
	convertRet string
)

// ConvertCmd resolves a conversion between two internal types and prints
// the glue code.
var ConvertCmd = &cobra.Command{
	Use:   "convert <from-type> <to-type>",
	Short: "Resolve a conversion between two internal types",
	Long: `Resolve the conversion path from one internal type to another and print
the generated glue code. Missing edges are built speculatively from the
generic rules when possible.

Generated code goes to stdout; diagnostics go to stderr.

Examples:
  rust-swig convert 'i32' 'jint'
  rust-swig convert '&mut Rc<RefCell<Foo>>' '&mut Foo' --var this`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	ConvertCmd.Flags().StringVar(&convertVar, "var", "v", "Variable name to convert")
	ConvertCmd.Flags().StringVar(&convertRet, "ret", "void", "Enclosing function return type")
}

func runConvert(cmd *cobra.Command, args []string) error {
	tm, err := buildEngine()
	if err != nil {
		return err
	}

	from := tm.FindOrAlloc(types.Parse(args[0]))
	to := tm.FindOrAlloc(types.Parse(args[1]))

	run := tm.NewRun()
	deps, code, err := run.ConvertValue(from, to, convertVar, convertRet, "convert command")
	if err != nil {
		return err
	}

	for _, dep := range deps {
		fmt.Fprintln(cmd.OutOrStdout(), dep)
	}
	fmt.Fprint(cmd.OutOrStdout(), code)
	return nil
}
