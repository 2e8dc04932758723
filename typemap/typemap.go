// Package typemap implements the type conversion resolution engine: a
// registry of known types, a directed graph of conversion rules between
// them, a set of parametric rule templates, and the algorithms that find
// or speculatively build conversion paths and pick foreign counterparts
// for internal types.
//
// One TypeMap instance can serve any number of generation runs, but not
// concurrently; the speculative path builder stages its edits in a
// snapshot and commits or rolls back before returning, so at most one
// exploration is ever in flight.
package typemap

import (
	"go.uber.org/zap"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/types"
)

// DefaultStepBudget bounds speculative path building: the maximum number
// of breadth-expansion rounds, not a wall-clock limit. Conversion chains
// in practice are short; seven rounds covers them with room to spare.
const DefaultStepBudget = 7

// TypeMap owns the conversion graph and every index over it.
type TypeMap struct {
	// node arena; TypeHandle.Idx indexes this table
	nodes []*typeNode
	names map[types.NodeKey]NodeIdx

	// edge arena plus adjacency and pair index. out preserves insertion
	// order, which makes path search deterministic for a fixed graph.
	edges []*convEdge
	out   map[NodeIdx][]int
	pair  map[[2]NodeIdx]int

	foreignNames   map[string]NodeIdx
	toForeignCache map[string]string // internal normalized name -> foreign name

	genericRules []*GenericRule
	utilsCode    []string

	classes []*decl.ClassInfo
	enums   map[string]*decl.EnumInfo

	stepBudget int
	log        *zap.SugaredLogger
}

// New creates an engine seeded with the built-in generic rules
// (reference-taking and owning-wrapper dereference templates).
func New(log *zap.SugaredLogger) *TypeMap {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TypeMap{
		names:          make(map[types.NodeKey]NodeIdx),
		out:            make(map[NodeIdx][]int),
		pair:           make(map[[2]NodeIdx]int),
		foreignNames:   make(map[string]NodeIdx),
		toForeignCache: make(map[string]string),
		genericRules:   defaultGenericRules(),
		enums:          make(map[string]*decl.EnumInfo),
		stepBudget:     DefaultStepBudget,
		log:            log.Named("typemap"),
	}
}

// SetStepBudget overrides the speculative search bound. Values below one
// are ignored.
func (tm *TypeMap) SetStepBudget(budget int) {
	if budget >= 1 {
		tm.stepBudget = budget
	}
}

// IsEmpty reports whether no types have been registered yet.
func (tm *TypeMap) IsEmpty() bool {
	return len(tm.nodes) == 0
}

// NodeCount returns the number of registered types.
func (tm *TypeMap) NodeCount() int {
	return len(tm.nodes)
}

// EdgeCount returns the number of concrete conversion rules.
func (tm *TypeMap) EdgeCount() int {
	return len(tm.edges)
}

func (tm *TypeMap) node(h TypeHandle) *typeNode {
	return tm.nodes[h.Idx]
}

// allocNode is the single place nodes enter the arena. Allocation is
// idempotent on the node key.
func (tm *TypeMap) allocNode(key types.NodeKey, expr types.TypeExpr) *typeNode {
	if idx, ok := tm.names[key]; ok {
		return tm.nodes[idx]
	}
	idx := NodeIdx(len(tm.nodes))
	n := newTypeNode(idx, key, expr)
	tm.nodes = append(tm.nodes, n)
	tm.names[key] = idx
	return n
}

// FindOrAlloc registers a type expression, or returns the existing node
// with the same normalized name.
func (tm *TypeMap) FindOrAlloc(expr types.TypeExpr) TypeHandle {
	return handleOf(tm.allocNode(types.KeyOf(expr), expr))
}

// FindOrAllocWithSuffix registers a disambiguated node: the same
// underlying type may be represented by several distinct nodes that only
// differ in the hidden suffix tag. Display output never shows the tag.
func (tm *TypeMap) FindOrAllocWithSuffix(expr types.TypeExpr, suffix string) TypeHandle {
	return handleOf(tm.allocNode(types.KeyWithTag(expr, suffix), expr))
}

// FindOrAllocImplements registers a type and tags it with a capability.
func (tm *TypeMap) FindOrAllocImplements(expr types.TypeExpr, capability string) TypeHandle {
	n := tm.allocNode(types.KeyOf(expr), expr)
	n.addCapability(capability)
	return handleOf(n)
}

// Lookup finds an already-registered type by normalized name.
func (tm *TypeMap) Lookup(expr types.TypeExpr) (TypeHandle, bool) {
	return tm.lookupKey(types.KeyOf(expr))
}

// LookupWithSuffix finds an already-registered disambiguated node.
func (tm *TypeMap) LookupWithSuffix(expr types.TypeExpr, suffix string) (TypeHandle, bool) {
	return tm.lookupKey(types.KeyWithTag(expr, suffix))
}

func (tm *TypeMap) lookupKey(key types.NodeKey) (TypeHandle, bool) {
	idx, ok := tm.names[key]
	if !ok {
		return TypeHandle{Idx: InvalidNode}, false
	}
	return handleOf(tm.nodes[idx]), true
}

// Implements reports whether the type carries the capability tag, falling
// through references: "&Foo" satisfies a constraint Foo is known to
// satisfy.
func (tm *TypeMap) Implements(h TypeHandle, capability string) bool {
	n := tm.node(h)
	if n.hasCapability(capability) {
		return true
	}
	if elem, ok := n.expr.RefElem(); ok {
		if idx, found := tm.names[types.KeyOf(elem)]; found {
			return tm.nodes[idx].hasCapability(capability)
		}
	}
	return false
}

// AddConversionRule installs a concrete edge between two registered
// types. A rule registered for an existing ordered pair replaces the
// earlier one (merge, by contrast, keeps the earlier one; see Merge).
func (tm *TypeMap) AddConversionRule(from, to TypeHandle, template, dependency string) {
	tm.log.Debugw("add conversion rule", "from", from.Name, "to", to.Name)
	key := [2]NodeIdx{from.Idx, to.Idx}
	if id, ok := tm.pair[key]; ok {
		tm.edges[id].template = template
		tm.edges[id].dependency = dependency
		return
	}
	tm.addEdge(from.Idx, to.Idx, template, dependency)
}

// addEdge appends a new edge; the caller has checked the pair is free.
func (tm *TypeMap) addEdge(from, to NodeIdx, template, dependency string) int {
	id := len(tm.edges)
	tm.edges = append(tm.edges, &convEdge{
		id:         id,
		from:       from,
		to:         to,
		template:   template,
		dependency: dependency,
	})
	tm.out[from] = append(tm.out[from], id)
	tm.pair[[2]NodeIdx{from, to}] = id
	return id
}

func (tm *TypeMap) findEdge(from, to NodeIdx) (int, bool) {
	id, ok := tm.pair[[2]NodeIdx{from, to}]
	return id, ok
}

// AddGenericRule appends a parametric conversion template.
func (tm *TypeMap) AddGenericRule(rule *GenericRule) {
	tm.genericRules = append(tm.genericRules, rule)
}

// GenericRules exposes the registered rule templates (read-only use).
func (tm *TypeMap) GenericRules() []*GenericRule {
	return tm.genericRules
}

// TakeUtilsCode drains the free-standing utility fragments collected from
// merged rule batches; the emitter includes them once per generated unit.
func (tm *TypeMap) TakeUtilsCode() []string {
	code := tm.utilsCode
	tm.utilsCode = nil
	return code
}

// RegisterClass records a declared class for self-type queries during
// foreign-candidate synthesis.
func (tm *TypeMap) RegisterClass(class *decl.ClassInfo) {
	tm.classes = append(tm.classes, class)
}

// RegisterEnum records an exported enum.
func (tm *TypeMap) RegisterEnum(enum *decl.EnumInfo) {
	tm.enums[enum.Name] = enum
}

// ExportedEnum returns the enum declaration behind a registered type, if
// the type is an exported enum.
func (tm *TypeMap) ExportedEnum(h TypeHandle) (*decl.EnumInfo, bool) {
	e, ok := tm.enums[tm.node(h).key.Name]
	return e, ok
}

// IsGeneratedForeignType reports whether a foreign-side name is one the
// generator itself produces (an exported enum or declared class).
func (tm *TypeMap) IsGeneratedForeignType(foreignName string) bool {
	if _, ok := tm.enums[foreignName]; ok {
		return true
	}
	for _, c := range tm.classes {
		if c.Name == foreignName {
			return true
		}
	}
	return false
}

// FindClassBySelfType answers the one query the engine makes against
// declared classes: which class's computed self type equals this type.
// The computed self type is the constructor return type when declared,
// else the self type. refFallback also matches "&T"/"&mut T" against a
// class whose self type is T.
func (tm *TypeMap) FindClassBySelfType(expr types.TypeExpr, refFallback bool) (*decl.ClassInfo, bool) {
	name := expr.Normalized
	if refFallback {
		if elem, ok := expr.RefElem(); ok {
			name = elem.Normalized
		}
	}
	for _, c := range tm.classes {
		this := c.ConstructorRetType
		if this == nil {
			self := c.SelfTypeAsExpr()
			this = &self
		}
		if this.Normalized == name {
			return c, true
		}
	}
	return nil, false
}

// AddForeign designates a registered type as the internal counterpart of
// a named foreign-side type.
func (tm *TypeMap) AddForeign(internal TypeHandle, foreignName string) {
	tm.foreignNames[foreignName] = internal.Idx
}

// FindForeignByName resolves a foreign-side name to its endpoint info.
func (tm *TypeMap) FindForeignByName(foreignName string) (ForeignTypeInfo, bool) {
	idx, ok := tm.foreignNames[foreignName]
	if !ok {
		return ForeignTypeInfo{}, false
	}
	return ForeignTypeInfo{Name: foreignName, Node: handleOf(tm.nodes[idx])}, true
}

// CacheToForeign records a confirmed internal-to-foreign mapping so the
// outgoing direction can skip the endpoint scan next time.
func (tm *TypeMap) CacheToForeign(from TypeHandle, to ForeignTypeInfo) {
	tm.toForeignCache[tm.node(from).key.String()] = to.Name
	tm.foreignNames[to.Name] = to.Node.Idx
}
