package typemap

import (
	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

// RuleBatch is a decoded unit of conversion rules ready to merge into an
// engine: types to register, concrete edges, parametric rules, and
// free-standing utility code. Rule files and the built-in seed batches
// both arrive in this shape.
type RuleBatch struct {
	Nodes    []BatchNode
	Edges    []BatchEdge
	Generics []*GenericRule
	Utils    []string
}

// BatchNode registers one type, optionally tagging capabilities and
// binding a foreign-side name.
type BatchNode struct {
	Expr       types.TypeExpr
	Implements []string
	Foreign    string
}

// BatchEdge is one concrete conversion rule between two types.
type BatchEdge struct {
	From       types.TypeExpr
	To         types.TypeExpr
	Template   string
	Dependency string
}

// MergeReport summarizes one merge: what landed and which edges lost a
// conflict. Conflicts are diagnostics, not failures.
type MergeReport struct {
	SourceID   string
	NodesAdded int
	EdgesAdded int
	Conflicts  []error
}

// Merge folds a rule batch into the engine. Types merge by normalized
// name with capability sets unioned; an edge whose ordered type pair
// already has a rule is dropped in favor of the earlier rule and
// reported as a conflict; generic rules and utility code append in
// order. Merging the same batch twice adds nothing new beyond the
// appended generics and utils, and turns every edge into a conflict.
func (tm *TypeMap) Merge(sourceID string, batch *RuleBatch) *MergeReport {
	tm.log.Debugw("merge rule batch", "source", sourceID,
		"nodes", len(batch.Nodes), "edges", len(batch.Edges), "generics", len(batch.Generics))

	report := &MergeReport{SourceID: sourceID}

	for _, bn := range batch.Nodes {
		key := types.KeyOf(bn.Expr)
		_, existed := tm.names[key]
		n := tm.allocNode(key, bn.Expr)
		if !existed {
			report.NodesAdded++
		}
		for _, tag := range bn.Implements {
			n.addCapability(tag)
		}
		if bn.Foreign != "" {
			tm.AddForeign(handleOf(n), bn.Foreign)
		}
	}

	for _, be := range batch.Edges {
		from := tm.allocNode(types.KeyOf(be.From), be.From)
		to := tm.allocNode(types.KeyOf(be.To), be.To)
		if _, ok := tm.findEdge(from.idx, to.idx); ok {
			conflict := errors.Wrapf(errors.ErrRuleConflict,
				"%s: rule '%s' -> '%s' already defined, keeping the earlier rule",
				sourceID, from.display(), to.display())
			report.Conflicts = append(report.Conflicts, conflict)
			tm.log.Warnw("conversion rule conflict",
				"source", sourceID, "from", from.display(), "to", to.display())
			continue
		}
		tm.addEdge(from.idx, to.idx, be.Template, be.Dependency)
		report.EdgesAdded++
	}

	tm.genericRules = append(tm.genericRules, batch.Generics...)
	tm.utilsCode = append(tm.utilsCode, batch.Utils...)

	return report
}
