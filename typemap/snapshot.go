package typemap

import (
	"github.com/ecumene/rust-swig/types"
)

// snapshot is the isolated overlay the speculative path builder works in.
// Nodes and edges created through it land in the live arenas but are
// tracked in an undo log and kept out of the live name index; rollback
// removes them in reverse order, restoring the exact prior state.
// Speculative additions are always appended after everything live, so
// reverse removal is plain truncation.
type snapshot struct {
	tm       *TypeMap
	newNames map[types.NodeKey]NodeIdx
	newNodes []NodeIdx
	newEdges []int
}

func newSnapshot(tm *TypeMap) *snapshot {
	return &snapshot{
		tm:       tm,
		newNames: make(map[types.NodeKey]NodeIdx),
	}
}

// nodeFor finds a node by key in the live index or the snapshot-local
// one, creating a tracked node when absent.
func (s *snapshot) nodeFor(key types.NodeKey, expr types.TypeExpr) NodeIdx {
	if idx, ok := s.tm.names[key]; ok {
		return idx
	}
	if idx, ok := s.newNames[key]; ok {
		return idx
	}
	idx := NodeIdx(len(s.tm.nodes))
	s.tm.nodes = append(s.tm.nodes, newTypeNode(idx, key, expr))
	s.newNames[key] = idx
	s.newNodes = append(s.newNodes, idx)
	return idx
}

// findByName resolves a plain (untagged) normalized name against live and
// snapshot-local nodes. Generic-rule constraints use this so capability
// tags on nodes created earlier in the same call count.
func (s *snapshot) findByName(name string) (*typeNode, bool) {
	key := types.NodeKey{Name: name}
	if idx, ok := s.tm.names[key]; ok {
		return s.tm.nodes[idx], true
	}
	if idx, ok := s.newNames[key]; ok {
		return s.tm.nodes[idx], true
	}
	return nil, false
}

// addEdge installs a tracked edge unless the pair already has one.
func (s *snapshot) addEdge(from, to NodeIdx, template, dependency string) {
	if _, ok := s.tm.findEdge(from, to); ok {
		return
	}
	id := s.tm.addEdge(from, to, template, dependency)
	s.newEdges = append(s.newEdges, id)
}

// rollback discards every tracked addition, newest first.
func (s *snapshot) rollback() {
	for i := len(s.newEdges) - 1; i >= 0; i-- {
		id := s.newEdges[i]
		e := s.tm.edges[id]
		adj := s.tm.out[e.from]
		s.tm.out[e.from] = adj[:len(adj)-1]
		delete(s.tm.pair, [2]NodeIdx{e.from, e.to})
		s.tm.edges = s.tm.edges[:id]
	}
	for i := len(s.newNodes) - 1; i >= 0; i-- {
		idx := s.newNodes[i]
		delete(s.tm.out, idx)
		s.tm.nodes = s.tm.nodes[:idx]
	}
	s.newEdges = nil
	s.newNodes = nil
	s.newNames = make(map[types.NodeKey]NodeIdx)
}

// pathEdge is one captured edge of a winning speculative path.
type pathEdge struct {
	fromKey  types.NodeKey
	fromExpr types.TypeExpr
	toKey    types.NodeKey
	toExpr   types.TypeExpr
	template string
	depend   string
}

// possiblePath is a winning path captured from a snapshot before
// rollback: enough to re-create exactly the new nodes and edges it used.
type possiblePath struct {
	length   int
	newEdges []pathEdge
}

// capture records which of the path's edges were created by this
// snapshot, with full endpoint payloads so they survive rollback.
func (s *snapshot) capture(path []int) *possiblePath {
	isNew := make(map[int]bool, len(s.newEdges))
	for _, id := range s.newEdges {
		isNew[id] = true
	}
	pp := &possiblePath{length: len(path)}
	for _, id := range path {
		if !isNew[id] {
			continue
		}
		e := s.tm.edges[id]
		from, to := s.tm.nodes[e.from], s.tm.nodes[e.to]
		pp.newEdges = append(pp.newEdges, pathEdge{
			fromKey:  from.key,
			fromExpr: from.expr,
			toKey:    to.key,
			toExpr:   to.expr,
			template: e.template,
			depend:   e.dependency,
		})
	}
	return pp
}

// commit re-creates a captured path's new nodes and edges in the live
// graph. Only the winning path's additions land; everything else the
// exploration touched was rolled back with the snapshot.
func (tm *TypeMap) commit(pp *possiblePath) {
	for _, pe := range pp.newEdges {
		from := tm.allocNode(pe.fromKey, pe.fromExpr)
		to := tm.allocNode(pe.toKey, pe.toExpr)
		if _, ok := tm.findEdge(from.idx, to.idx); !ok {
			tm.addEdge(from.idx, to.idx, pe.template, pe.depend)
		}
	}
}
