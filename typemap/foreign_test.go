package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

// jboolean-style setup: an internal primitive bridged to a foreign
// primitive in both directions.
func boolBridge(t *testing.T) (*TypeMap, TypeHandle) {
	t.Helper()
	tm := New(nil)
	b := tm.FindOrAlloc(types.Parse("bool"))
	jb := tm.FindOrAlloc(types.Parse("jboolean"))
	tm.AddConversionRule(b, jb,
		"let {to_var}: {to_var_type} = if {from_var} { 1 } else { 0 };", "")
	tm.AddConversionRule(jb, b,
		"let {to_var}: {to_var_type} = {from_var} != 0;", "")
	tm.AddForeign(jb, "boolean")
	return tm, b
}

func TestMapToForeignBothDirections(t *testing.T) {
	tm, b := boolBridge(t)

	out, err := tm.MapToForeign(b, Outgoing)
	require.NoError(t, err)
	assert.Equal(t, "boolean", out.Name)
	assert.Equal(t, "jboolean", out.Node.Name)

	in, err := tm.MapToForeign(b, Incoming)
	require.NoError(t, err)
	assert.Equal(t, "boolean", in.Name)
}

func TestMapToForeignUsesOutgoingCache(t *testing.T) {
	tm, b := boolBridge(t)

	first, err := tm.MapToForeign(b, Outgoing)
	require.NoError(t, err)

	edgesBefore := tm.EdgeCount()
	again, err := tm.MapToForeign(b, Outgoing)
	require.NoError(t, err)
	assert.Equal(t, first, again)
	assert.Equal(t, edgesBefore, tm.EdgeCount())
}

func TestMapToForeignTieBreaksLexicographically(t *testing.T) {
	tm := New(nil)
	v := tm.FindOrAlloc(types.Parse("u32"))
	zeta := tm.FindOrAlloc(types.Parse("jzeta"))
	alpha := tm.FindOrAlloc(types.Parse("jalpha"))

	// both endpoints one edge away; registration order must not matter
	tm.AddConversionRule(v, zeta, "let {to_var}: {to_var_type} = z({from_var});", "")
	tm.AddConversionRule(v, alpha, "let {to_var}: {to_var_type} = a({from_var});", "")
	tm.AddForeign(zeta, "zeta")
	tm.AddForeign(alpha, "alpha")

	fti, err := tm.MapToForeign(v, Outgoing)
	require.NoError(t, err)
	assert.Equal(t, "alpha", fti.Name)
}

func TestMapToForeignSynthesizesClassCandidate(t *testing.T) {
	tm := New(nil)
	self := types.Parse("Foo")
	tm.RegisterClass(&decl.ClassInfo{Name: "Foo", SelfType: &self})

	foo := tm.FindOrAllocImplements(types.Parse("Foo"), "SwigForeignClass")

	rule := NewGenericRule("T", "&T", "jobject",
		"let {to_var}: {to_var_type} = box_object({from_var});")
	rule.Requires = []string{"SwigForeignClass"}
	rule.ForeignHint = "T"
	tm.AddGenericRule(rule)

	fti, err := tm.MapToForeign(foo, Outgoing)
	require.NoError(t, err)
	assert.Equal(t, "Foo", fti.Name)
	assert.Equal(t, "jobject", fti.Node.Name)

	// the endpoint is the suffix-disambiguated jobject node
	h, ok := tm.LookupWithSuffix(types.Parse("jobject"), "Foo")
	require.True(t, ok)
	assert.Equal(t, h.Idx, fti.Node.Idx)

	// the committed path survives: Foo -> &Foo -> jobject#Foo
	path, err := tm.findPath(foo.Idx, fti.Node.Idx, "")
	require.NoError(t, err)
	assert.Len(t, path, 2)

	// and the mapping is cached for the outgoing direction
	again, err := tm.MapToForeign(foo, Outgoing)
	require.NoError(t, err)
	assert.Equal(t, fti, again)
}

func TestMapToForeignTwoClassesShareDestinationType(t *testing.T) {
	tm := New(nil)
	fooSelf := types.Parse("Foo")
	barSelf := types.Parse("Bar")
	tm.RegisterClass(&decl.ClassInfo{Name: "Foo", SelfType: &fooSelf})
	tm.RegisterClass(&decl.ClassInfo{Name: "Bar", SelfType: &barSelf})

	foo := tm.FindOrAllocImplements(types.Parse("Foo"), "SwigForeignClass")
	bar := tm.FindOrAllocImplements(types.Parse("Bar"), "SwigForeignClass")

	rule := NewGenericRule("T", "&T", "jobject",
		"let {to_var}: {to_var_type} = box_object({from_var});")
	rule.Requires = []string{"SwigForeignClass"}
	rule.ForeignHint = "T"
	tm.AddGenericRule(rule)

	fooInfo, err := tm.MapToForeign(foo, Outgoing)
	require.NoError(t, err)
	barInfo, err := tm.MapToForeign(bar, Outgoing)
	require.NoError(t, err)

	assert.Equal(t, "Foo", fooInfo.Name)
	assert.Equal(t, "Bar", barInfo.Name)
	assert.NotEqual(t, fooInfo.Node.Idx, barInfo.Node.Idx)
	assert.Equal(t, "jobject", fooInfo.Node.Name)
	assert.Equal(t, "jobject", barInfo.Node.Name)
}

func TestMapToForeignSkipsCapabilityWithoutClass(t *testing.T) {
	tm := New(nil)
	// tagged but no declared class behind it
	orphan := tm.FindOrAllocImplements(types.Parse("Orphan"), "SwigForeignClass")

	rule := NewGenericRule("T", "&T", "jobject",
		"let {to_var}: {to_var_type} = box_object({from_var});")
	rule.Requires = []string{"SwigForeignClass"}
	rule.ForeignHint = "T"
	tm.AddGenericRule(rule)

	_, err := tm.MapToForeign(orphan, Outgoing)
	require.Error(t, err)
	assert.True(t, errors.IsNoForeignCounterpart(err))
	assert.Contains(t, err.Error(), "outgoing")
}

func TestMapToForeignNotFound(t *testing.T) {
	tm, _ := boolBridge(t)
	vec := tm.FindOrAlloc(types.Parse("Vec<i32>"))

	_, err := tm.MapToForeign(vec, Incoming)
	require.Error(t, err)
	assert.True(t, errors.IsNoForeignCounterpart(err))
	assert.Contains(t, err.Error(), "Vec<i32>")
}
