package typemap

import (
	"sort"

	"github.com/ecumene/rust-swig/errors"
)

// Direction says which way a foreign mapping must convert: Outgoing maps
// an internal type to the foreign type values of it become, Incoming maps
// it to the foreign type values of it come from.
type Direction int

const (
	Outgoing Direction = iota
	Incoming
)

func (d Direction) String() string {
	if d == Incoming {
		return "incoming"
	}
	return "outgoing"
}

// ForeignTypeInfo names a foreign-side type together with its internal
// endpoint node.
type ForeignTypeInfo struct {
	Name string
	Node TypeHandle
}

// MapToForeign resolves the foreign counterpart of an internal type for
// the given direction. Resolution escalates through four stages: the
// outgoing cache, a shortest-path scan over the known foreign endpoints,
// candidate synthesis from hint-carrying generic rules, and speculative
// path building against every endpoint under a step budget that grows
// one round at a time. Ties at equal path length go to the
// lexicographically smallest foreign name, which keeps the choice stable
// across runs.
func (tm *TypeMap) MapToForeign(internal TypeHandle, dir Direction) (ForeignTypeInfo, error) {
	tm.log.Debugw("map to foreign", "type", internal.Name, "direction", dir.String())

	if dir == Outgoing {
		if name, ok := tm.toForeignCache[tm.node(internal).key.String()]; ok {
			if fti, found := tm.FindForeignByName(name); found {
				return fti, nil
			}
		}
	}

	if fti, ok := tm.scanForeignEndpoints(internal, dir); ok {
		if dir == Outgoing {
			tm.CacheToForeign(internal, fti)
		}
		return fti, nil
	}

	tm.synthesizeForeignCandidates()

	for budget := 1; budget <= tm.stepBudget; budget++ {
		var best *possiblePath
		var bestInfo ForeignTypeInfo
		for _, name := range tm.sortedForeignNames() {
			endpoint := handleOf(tm.nodes[tm.foreignNames[name]])
			var pp *possiblePath
			if dir == Outgoing {
				pp = tm.tryBuildPath(internal, endpoint, budget)
			} else {
				pp = tm.tryBuildPath(endpoint, internal, budget)
			}
			if pp == nil {
				continue
			}
			if best == nil || pp.length < best.length {
				best = pp
				bestInfo = ForeignTypeInfo{Name: name, Node: endpoint}
			}
		}
		if best != nil {
			tm.commit(best)
			if dir == Outgoing {
				tm.CacheToForeign(internal, bestInfo)
			}
			tm.log.Debugw("map to foreign: built path",
				"type", internal.Name, "foreign", bestInfo.Name, "budget", budget)
			return bestInfo, nil
		}
	}

	return ForeignTypeInfo{}, errors.NoForeignCounterpart(tm.node(internal).display(), dir.String())
}

// scanForeignEndpoints looks for the endpoint closest to the internal
// type over concrete edges only. Endpoints are visited in lexicographic
// name order and only a strictly shorter path displaces the current best,
// so equal-length candidates resolve to the smallest name.
func (tm *TypeMap) scanForeignEndpoints(internal TypeHandle, dir Direction) (ForeignTypeInfo, bool) {
	bestLen := -1
	var best ForeignTypeInfo
	for _, name := range tm.sortedForeignNames() {
		endpoint := handleOf(tm.nodes[tm.foreignNames[name]])
		from, to := internal.Idx, endpoint.Idx
		if dir == Incoming {
			from, to = to, from
		}
		path, err := tm.findPath(from, to, "")
		if err != nil {
			continue
		}
		if bestLen < 0 || len(path) < bestLen {
			bestLen = len(path)
			best = ForeignTypeInfo{Name: name, Node: endpoint}
		}
	}
	return best, bestLen >= 0
}

func (tm *TypeMap) sortedForeignNames() []string {
	names := make([]string, 0, len(tm.foreignNames))
	for name := range tm.foreignNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// synthesizeForeignCandidates registers the foreign endpoints implied by
// hint-carrying generic rules: every registered type satisfying such a
// rule's constraint yields a candidate whose foreign name comes from the
// hint applied to the declared class behind the type, and whose internal
// node is the rule's destination disambiguated by the hint applied to
// the type itself. A capability match with no declared class behind it
// is skipped with a warning. Registration is idempotent, so repeated
// mapping calls may re-run this freely.
func (tm *TypeMap) synthesizeForeignCandidates() {
	count := len(tm.nodes)
	for _, rule := range tm.genericRules {
		if rule.ForeignHint == "" {
			continue
		}
		for idx := 0; idx < count; idx++ {
			n := tm.nodes[idx]
			if !n.hasAllCapabilities(rule.Requires) {
				continue
			}
			class, ok := tm.FindClassBySelfType(n.expr, true)
			if !ok {
				tm.log.Warnw("foreign candidate skipped",
					"type", n.display(), "error", errors.ErrMissingClass)
				continue
			}
			binding := n.key.Name
			foreignName := substParam(rule.ForeignHint, rule.Param, class.Name)
			// several nodes can stand behind one class (self type and
			// constructor return type); the first registration wins
			if _, exists := tm.foreignNames[foreignName]; exists {
				continue
			}
			h := tm.FindOrAllocWithSuffix(rule.InstantiateExpr(binding),
				substParam(rule.ForeignHint, rule.Param, binding))
			tm.AddForeign(h, foreignName)
			tm.log.Debugw("synthesized foreign candidate",
				"foreign", foreignName, "node", h.Name)
		}
	}
}
