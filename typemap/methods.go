package typemap

import (
	"strings"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

// ArgConversion is the marshaling result for one method argument: the
// foreign type it crosses the boundary as, plus the glue emitted into
// the generated wrapper.
type ArgConversion struct {
	Foreign ForeignTypeInfo
	Deps    []string
	Code    string
}

// VoidReturn is the foreign spelling of the unit return.
const VoidReturn = "void"

// ConvertMethodOutput marshals a method's return value for the foreign
// side: resolves the outgoing foreign counterpart of the return type and
// produces the conversion from the internal value into the counterpart's
// endpoint type. The unit return needs no conversion and maps to void.
func (r *Run) ConvertMethodOutput(ret types.TypeExpr, varName, context string) (ArgConversion, error) {
	if ret.IsZero() || ret.IsUnit() {
		return ArgConversion{Foreign: ForeignTypeInfo{Name: VoidReturn}}, nil
	}
	tm := r.tm
	from := tm.FindOrAlloc(ret)
	fti, err := tm.MapToForeign(from, Outgoing)
	if err != nil {
		return ArgConversion{}, err
	}
	deps, code, err := r.ConvertValue(from, fti.Node, varName, fti.Name, context)
	if err != nil {
		return ArgConversion{}, err
	}
	return ArgConversion{Foreign: fti, Deps: deps, Code: code}, nil
}

// ConvertMethodInputs marshals a method's arguments from their incoming
// foreign counterparts into the internal types, skipping the receiver.
// argNames supplies one variable name per non-receiver argument; the
// conversions come back in argument order.
func (r *Run) ConvertMethodInputs(m decl.MethodInfo, argNames []string, fnRetType string) ([]ArgConversion, error) {
	args := m.Args[m.SelfSkip():]
	return r.convertInputs(args, argNames, fnRetType, m.Name, Incoming)
}

// ConvertInterfaceInputs marshals an interface method's arguments the
// opposite way: interface methods are callbacks out of the internal
// language, so every argument converts toward its outgoing foreign
// counterpart.
func (r *Run) ConvertInterfaceInputs(m decl.InterfaceMethod, argNames []string) ([]ArgConversion, error) {
	return r.convertInputs(m.Args, argNames, VoidReturn, m.Name, Outgoing)
}

func (r *Run) convertInputs(args []types.TypeExpr, argNames []string, fnRetType, methodName string, dir Direction) ([]ArgConversion, error) {
	if len(argNames) < len(args) {
		panic(errors.AssertionFailedf("method %s: %d argument names for %d arguments",
			methodName, len(argNames), len(args)))
	}
	tm := r.tm
	out := make([]ArgConversion, 0, len(args))
	for i, arg := range args {
		h := tm.FindOrAlloc(arg)
		fti, err := tm.MapToForeign(h, dir)
		if err != nil {
			return nil, err
		}
		context := methodName + " / " + argNames[i]
		var deps []string
		var code string
		if dir == Incoming {
			deps, code, err = r.ConvertValue(fti.Node, h, argNames[i], fnRetType, context)
		} else {
			deps, code, err = r.ConvertValue(h, fti.Node, argNames[i], fnRetType, context)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ArgConversion{Foreign: fti, Deps: deps, Code: code})
	}
	return out, nil
}

// JoinConversions concatenates per-argument glue in order and collects
// the dependency fragments, preserving first-seen order.
func JoinConversions(convs []ArgConversion) ([]string, string) {
	var deps []string
	seen := make(map[string]bool)
	var code strings.Builder
	for _, c := range convs {
		for _, d := range c.Deps {
			if !seen[d] {
				seen[d] = true
				deps = append(deps, d)
			}
		}
		code.WriteString(c.Code)
	}
	return deps, code.String()
}
