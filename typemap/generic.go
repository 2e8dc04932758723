package typemap

import (
	"strings"

	"github.com/ecumene/rust-swig/types"
)

// GenericRule is a parametric conversion template: a family of edges over
// a single type parameter, materialized into the graph only when the
// speculative path builder matches it against a concrete type.
type GenericRule struct {
	// Param is the type parameter name the patterns range over, e.g. "T".
	Param string
	// From and To are type patterns containing Param as a whole token,
	// e.g. "&Box<T>" -> "&T". From must mention Param exactly once.
	From string
	To   string
	// Requires is the capability constraint on the bound parameter: the
	// matched type's node must carry every listed tag. Empty means
	// unconstrained.
	Requires []string
	// Template and Dependency become the instantiated edge's payload.
	Template   string
	Dependency string
	// ForeignHint, when set, marks the rule as producing a foreign type
	// family: a foreign-side name template over Param. Instantiated
	// destinations are then disambiguated by the substituted hint, so
	// several classes can share one pointer-shaped destination type.
	ForeignHint string
}

// NewGenericRule builds a rule after normalizing its patterns.
func NewGenericRule(param, from, to, template string) *GenericRule {
	return &GenericRule{
		Param:    param,
		From:     types.Normalize(from),
		To:       types.Normalize(to),
		Template: template,
	}
}

// Match binds the rule's parameter against a concrete normalized type
// name. Returns the binding and true on success.
func (r *GenericRule) Match(name string) (string, bool) {
	prefix, suffix, ok := splitPattern(r.From, r.Param)
	if !ok {
		return "", false
	}
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return "", false
	}
	mid := name[len(prefix) : len(name)-len(suffix)]
	if mid == "" || !balanced(mid) {
		return "", false
	}
	// "&T" must not bind T="mut Foo" out of "&mut Foo"; a binding is a
	// complete type, and a bare "mut ..." is not one.
	if mid == "mut" || strings.HasPrefix(mid, "mut ") {
		return "", false
	}
	return mid, true
}

// Instantiate substitutes a binding into the destination pattern and
// yields the destination node key. Hint-carrying rules tag the key so the
// destination stays distinct per bound type.
func (r *GenericRule) Instantiate(binding string) types.NodeKey {
	to := types.Parse(substParam(r.To, r.Param, binding))
	if r.ForeignHint != "" {
		return types.KeyWithTag(to, substParam(r.ForeignHint, r.Param, binding))
	}
	return types.KeyOf(to)
}

// InstantiateExpr is the destination type expression for a binding.
func (r *GenericRule) InstantiateExpr(binding string) types.TypeExpr {
	return types.Parse(substParam(r.To, r.Param, binding))
}

// splitPattern splits a pattern around its single whole-token occurrence
// of the parameter.
func splitPattern(pattern, param string) (prefix, suffix string, ok bool) {
	idx := indexToken(pattern, param)
	if idx < 0 {
		return "", "", false
	}
	return pattern[:idx], pattern[idx+len(param):], true
}

// indexToken finds param as a standalone token: not embedded in a longer
// identifier like "Tree".
func indexToken(s, param string) int {
	for start := 0; ; {
		i := strings.Index(s[start:], param)
		if i < 0 {
			return -1
		}
		i += start
		beforeOK := i == 0 || !isIdentByte(s[i-1])
		afterOK := i+len(param) == len(s) || !isIdentByte(s[i+len(param)])
		if beforeOK && afterOK {
			return i
		}
		start = i + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

// substParam replaces whole-token occurrences of param in a pattern.
func substParam(pattern, param, arg string) string {
	var b strings.Builder
	rest := pattern
	for {
		i := indexToken(rest, param)
		if i < 0 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:i])
		b.WriteString(arg)
		rest = rest[i+len(param):]
	}
}

// balanced rejects captures that cut through angle brackets or tuples,
// e.g. matching "&Box<T>" against "&Box<Foo>>" capturing "Foo>".
func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// constraintSatisfied checks the rule's capability constraint against the
// bound type, looking the binding up through the supplied resolver so
// nodes created earlier in the same speculative call count.
func (r *GenericRule) constraintSatisfied(binding string, lookup func(name string) (*typeNode, bool)) bool {
	if len(r.Requires) == 0 {
		return true
	}
	n, ok := lookup(binding)
	if !ok {
		return false
	}
	return n.hasAllCapabilities(r.Requires)
}

// defaultGenericRules is the engine's built-in rule set: taking
// references and dereferencing owning wrappers. Every engine instance
// starts from these; rule batches append more.
func defaultGenericRules() []*GenericRule {
	return []*GenericRule{
		NewGenericRule("T", "T", "&T",
			"let mut {to_var}: {to_var_type} = &{from_var};"),
		NewGenericRule("T", "T", "&mut T",
			"let mut {to_var}: {to_var_type} = &mut {from_var};"),
		NewGenericRule("T", "&mut T", "&T",
			"let mut {to_var}: {to_var_type} = {from_var};"),
		NewGenericRule("T", "&Box<T>", "&T",
			"let mut {to_var}: {to_var_type} = {from_var}.as_ref();"),
		NewGenericRule("T", "&mut Box<T>", "&mut T",
			"let mut {to_var}: {to_var_type} = {from_var}.as_mut();"),
	}
}
