package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

func primitiveBatch() *RuleBatch {
	return &RuleBatch{
		Nodes: []BatchNode{
			{Expr: types.Parse("bool")},
			{Expr: types.Parse("jboolean"), Foreign: "boolean"},
		},
		Edges: []BatchEdge{
			{
				From:     types.Parse("bool"),
				To:       types.Parse("jboolean"),
				Template: "let {to_var}: {to_var_type} = if {from_var} { 1 } else { 0 };",
			},
			{
				From:     types.Parse("jboolean"),
				To:       types.Parse("bool"),
				Template: "let {to_var}: {to_var_type} = {from_var} != 0;",
			},
		},
		Utils: []string{"fn to_jboolean(v: bool) -> jboolean { if v { 1 } else { 0 } }"},
	}
}

func TestMergeRegistersBatch(t *testing.T) {
	tm := New(nil)
	report := tm.Merge("jni_seed.toml", primitiveBatch())

	assert.Equal(t, 2, report.NodesAdded)
	assert.Equal(t, 2, report.EdgesAdded)
	assert.Empty(t, report.Conflicts)
	assert.Equal(t, 2, tm.NodeCount())
	assert.Equal(t, 2, tm.EdgeCount())

	fti, ok := tm.FindForeignByName("boolean")
	require.True(t, ok)
	assert.Equal(t, "jboolean", fti.Node.Name)
}

func TestMergeIsIdempotentOnGraphShape(t *testing.T) {
	tm := New(nil)
	tm.Merge("first.toml", primitiveBatch())
	nodes, edges := tm.NodeCount(), tm.EdgeCount()

	report := tm.Merge("second.toml", primitiveBatch())
	assert.Equal(t, 0, report.NodesAdded)
	assert.Equal(t, 0, report.EdgesAdded)
	assert.Len(t, report.Conflicts, 2)
	assert.Equal(t, nodes, tm.NodeCount())
	assert.Equal(t, edges, tm.EdgeCount())
}

func TestMergeKeepsEarlierEdgeOnConflict(t *testing.T) {
	tm := New(nil)
	tm.Merge("first.toml", primitiveBatch())

	conflicting := &RuleBatch{
		Edges: []BatchEdge{{
			From:     types.Parse("bool"),
			To:       types.Parse("jboolean"),
			Template: "let {to_var}: {to_var_type} = other({from_var});",
		}},
	}
	report := tm.Merge("second.toml", conflicting)
	require.Len(t, report.Conflicts, 1)
	assert.True(t, errors.Is(report.Conflicts[0], errors.ErrRuleConflict))
	assert.Contains(t, report.Conflicts[0].Error(), "second.toml")

	b, _ := tm.Lookup(types.Parse("bool"))
	jb, _ := tm.Lookup(types.Parse("jboolean"))
	id, ok := tm.findEdge(b.Idx, jb.Idx)
	require.True(t, ok)
	assert.NotContains(t, tm.edges[id].template, "other")
}

func TestMergeUnionsCapabilities(t *testing.T) {
	tm := New(nil)
	tm.Merge("a.toml", &RuleBatch{Nodes: []BatchNode{
		{Expr: types.Parse("Foo"), Implements: []string{"SwigForeignClass"}},
	}})
	tm.Merge("b.toml", &RuleBatch{Nodes: []BatchNode{
		{Expr: types.Parse("Foo"), Implements: []string{"Clone"}},
	}})

	h, ok := tm.Lookup(types.Parse("Foo"))
	require.True(t, ok)
	assert.True(t, tm.Implements(h, "SwigForeignClass"))
	assert.True(t, tm.Implements(h, "Clone"))
	assert.Equal(t, 1, tm.NodeCount())
}

func TestMergeAppendsGenerics(t *testing.T) {
	tm := New(nil)
	before := len(tm.GenericRules())

	rule := NewGenericRule("T", "&Rc<T>", "&T",
		"let mut {to_var}: {to_var_type} = {from_var}.as_ref();")
	tm.Merge("cells.toml", &RuleBatch{Generics: []*GenericRule{rule}})

	rules := tm.GenericRules()
	require.Len(t, rules, before+1)
	assert.Same(t, rule, rules[len(rules)-1])
}
