package typemap

import (
	"strings"

	"github.com/google/uuid"
)

// Run is one binding-generation run over a shared TypeMap. It owns the
// run-scoped consumption state: which edges' one-time dependency
// fragments have been emitted. The graph itself stays free of per-run
// state and can serve any number of runs.
type Run struct {
	ID      uuid.UUID
	tm      *TypeMap
	emitted map[int]bool
}

// NewRun starts a generation run.
func (tm *TypeMap) NewRun() *Run {
	return &Run{
		ID:      uuid.New(),
		tm:      tm,
		emitted: make(map[int]bool),
	}
}

// ConvertValue produces the glue code that turns a value of type from
// into a value of type to. It tries the direct path first and falls back
// to speculative path building on a miss. The result is the one-time
// dependency fragments this run has not emitted yet (in path order) and
// the concatenated template expansions. context describes the call site
// for diagnostics (method name, argument).
func (r *Run) ConvertValue(from, to TypeHandle, varName, fnRetType, context string) ([]string, string, error) {
	tm := r.tm
	path, err := tm.findPath(from.Idx, to.Idx, context)
	if err != nil {
		tm.log.Debugw("convert value: no direct path, trying to build one",
			"from", from.Name, "to", to.Name)
		tm.BuildPathIfPossible(from, to, tm.stepBudget)
		path, err = tm.findPath(from.Idx, to.Idx, context)
		if err != nil {
			return nil, "", err
		}
	}

	var deps []string
	var code strings.Builder
	for _, id := range path {
		e := tm.edges[id]
		if e.dependency != "" && !r.emitted[id] {
			r.emitted[id] = true
			deps = append(deps, e.dependency)
		}
		target := tm.nodes[e.to].display()
		code.WriteString(applyTemplate(e.template, varName, varName, target, fnRetType))
	}
	return deps, code.String(), nil
}
