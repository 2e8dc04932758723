package typemap

import (
	"strings"

	"github.com/ecumene/rust-swig/errors"
)

// Placeholders a conversion code template may use. A valid template names
// the source variable, the destination variable and the destination type;
// the enclosing function's return type is optional (used by templates that
// early-return on failure).
const (
	FromVarTemplate         = "{from_var}"
	ToVarTemplate           = "{to_var}"
	ToVarTypeTemplate       = "{to_var_type}"
	FunctionRetTypeTemplate = "{function_ret_type}"
)

// convEdge is one directed conversion rule between two registered types.
// Dependency is an optional code fragment a generated unit needs at most
// once no matter how many times the edge is traversed; the per-run
// emission flag lives on Run, not here, so the graph can serve many runs.
type convEdge struct {
	id         int
	from, to   NodeIdx
	template   string
	dependency string
}

// ValidateTemplate checks a conversion template names all required
// placeholders.
func ValidateTemplate(code string) error {
	if strings.Contains(code, ToVarTemplate) &&
		strings.Contains(code, FromVarTemplate) &&
		strings.Contains(code, ToVarTypeTemplate) {
		return nil
	}
	return errors.Newf("template %q does not contain one of %s, %s, %s",
		code, ToVarTemplate, FromVarTemplate, ToVarTypeTemplate)
}

// applyTemplate expands a conversion template with concrete names. The
// destination type name arrives already stripped of any disambiguator.
func applyTemplate(template, toVar, fromVar, toTypename, fnRetType string) string {
	code := "    " + template + "\n"
	code = strings.ReplaceAll(code, ToVarTemplate, toVar)
	code = strings.ReplaceAll(code, FromVarTemplate, fromVar)
	code = strings.ReplaceAll(code, ToVarTypeTemplate, toTypename)
	code = strings.ReplaceAll(code, FunctionRetTypeTemplate, fnRetType)
	return code
}
