package typemap

import (
	"github.com/ecumene/rust-swig/errors"
)

// findPath is the direct-path search: shortest path by edge count from
// one node to another over the concrete edges. Breadth-first over the
// adjacency lists, which preserve insertion order, so the result is
// deterministic for a fixed graph state; tie-break order carries no
// meaning beyond that. from == to yields the empty path.
func (tm *TypeMap) findPath(from, to NodeIdx, context string) ([]int, error) {
	if from == to {
		return []int{}, nil
	}

	parentEdge := make(map[NodeIdx]int)
	visited := map[NodeIdx]bool{from: true}
	queue := []NodeIdx{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, id := range tm.out[cur] {
			next := tm.edges[id].to
			if visited[next] {
				continue
			}
			visited[next] = true
			parentEdge[next] = id
			if next == to {
				return tm.unwindPath(from, to, parentEdge), nil
			}
			queue = append(queue, next)
		}
	}

	return nil, errors.NoConversionPath(tm.nodes[from].display(), tm.nodes[to].display(), context)
}

func (tm *TypeMap) unwindPath(from, to NodeIdx, parentEdge map[NodeIdx]int) []int {
	var rev []int
	for cur := to; cur != from; {
		id := parentEdge[cur]
		rev = append(rev, id)
		cur = tm.edges[id].from
	}
	path := make([]int, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		path = append(path, rev[i])
	}
	return path
}

// reachable is the plain existence check the builder uses before paying
// for a full path reconstruction.
func (tm *TypeMap) reachable(from, to NodeIdx) bool {
	if from == to {
		return true
	}
	visited := map[NodeIdx]bool{from: true}
	stack := []NodeIdx{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, id := range tm.out[cur] {
			next := tm.edges[id].to
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// tryBuildPath speculatively instantiates generic rules breadth-first
// from the start type until the goal becomes reachable or the step
// budget runs out. All exploration happens inside a snapshot; the
// returned path (if any) is captured before the snapshot rolls back, so
// the live graph is untouched either way. The search stops at the first
// connection rather than the overall shortest chain: rule matching is
// the expensive part, and real conversion chains are short.
func (tm *TypeMap) tryBuildPath(start, goal TypeHandle, maxSteps int) *possiblePath {
	tm.log.Debugw("try build path",
		"from", start.Name, "to", goal.Name,
		"nodes", len(tm.nodes), "edges", len(tm.edges))

	snap := newSnapshot(tm)
	defer snap.rollback()

	cur := []NodeIdx{start.Idx}

	for step := 0; step < maxSteps; step++ {
		if len(cur) == 0 {
			break
		}
		var next []NodeIdx
		inNext := make(map[NodeIdx]bool)
		push := func(idx NodeIdx) {
			if !inNext[idx] {
				inNext[idx] = true
				next = append(next, idx)
			}
		}

		for _, fromIdx := range cur {
			fromName := tm.nodes[fromIdx].key.Name

			// existing concrete neighbors stay in the frontier too
			for _, id := range tm.out[fromIdx] {
				push(tm.edges[id].to)
			}

			for _, rule := range tm.genericRules {
				binding, ok := rule.Match(fromName)
				if !ok {
					continue
				}
				if !rule.constraintSatisfied(binding, snap.findByName) {
					continue
				}
				toKey := rule.Instantiate(binding)
				if toKey.Name == fromName && toKey.Tag == tm.nodes[fromIdx].key.Tag {
					continue
				}
				toIdx := snap.nodeFor(toKey, rule.InstantiateExpr(binding))
				snap.addEdge(fromIdx, toIdx, rule.Template, rule.Dependency)

				if tm.reachable(toIdx, goal.Idx) {
					path, err := tm.findPath(start.Idx, goal.Idx, "")
					if err != nil {
						// reachability just said otherwise
						panic(errors.AssertionFailedf("speculative path vanished: %v", err))
					}
					return snap.capture(path)
				}
				push(toIdx)
			}
		}

		cur = next
	}

	tm.log.Debugw("try build path: no results", "from", start.Name, "to", goal.Name)
	return nil
}

// BuildPathIfPossible runs the speculative builder and commits the
// winning path's additions into the live graph. Reports whether a path
// now exists.
func (tm *TypeMap) BuildPathIfPossible(start, goal TypeHandle, maxSteps int) bool {
	pp := tm.tryBuildPath(start, goal, maxSteps)
	if pp == nil {
		return false
	}
	tm.commit(pp)
	return true
}
