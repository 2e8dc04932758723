package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

func TestFindPathIdentity(t *testing.T) {
	tm := New(nil)
	a := tm.FindOrAlloc(types.Parse("Foo"))

	path, err := tm.findPath(a.Idx, a.Idx, "")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindPathShortestAndDeterministic(t *testing.T) {
	tm := New(nil)
	a := tm.FindOrAlloc(types.Parse("A"))
	b := tm.FindOrAlloc(types.Parse("B"))
	c := tm.FindOrAlloc(types.Parse("C"))

	// long route first, short route second: BFS still finds the short one
	tm.AddConversionRule(a, b, "a->b", "")
	tm.AddConversionRule(b, c, "b->c", "")
	tm.AddConversionRule(a, c, "a->c", "")

	first, err := tm.findPath(a.Idx, c.Idx, "")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := tm.findPath(a.Idx, c.Idx, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindPathMissIsNoConversionPath(t *testing.T) {
	tm := New(nil)
	a := tm.FindOrAlloc(types.Parse("A"))
	b := tm.FindOrAlloc(types.Parse("B"))

	_, err := tm.findPath(a.Idx, b.Idx, "method f / arg x")
	require.Error(t, err)
	assert.True(t, errors.IsNoConversionPath(err))
	assert.Contains(t, err.Error(), "'A'")
	assert.Contains(t, err.Error(), "'B'")
}

func TestBuildPathRollbackOnFailure(t *testing.T) {
	tm := New(nil)
	start := tm.FindOrAlloc(types.Parse("Vec<i32>"))
	goal := tm.FindOrAlloc(types.Parse("jint"))

	nodesBefore := tm.NodeCount()
	edgesBefore := tm.EdgeCount()

	ok := tm.BuildPathIfPossible(start, goal, DefaultStepBudget)
	assert.False(t, ok)
	assert.Equal(t, nodesBefore, tm.NodeCount())
	assert.Equal(t, edgesBefore, tm.EdgeCount())
}

func TestBuildPathCommitsOnlyWinningPath(t *testing.T) {
	tm := New(nil)
	start := tm.FindOrAlloc(types.Parse("Foo"))
	goal := tm.FindOrAlloc(types.Parse("&Foo"))

	nodesBefore := tm.NodeCount()

	// the default T -> &T rule connects these in one step; the sibling
	// T -> &mut T instantiation explored alongside it must not survive
	ok := tm.BuildPathIfPossible(start, goal, DefaultStepBudget)
	require.True(t, ok)

	assert.Equal(t, nodesBefore, tm.NodeCount())
	assert.Equal(t, 1, tm.EdgeCount())
	_, found := tm.Lookup(types.Parse("&mut Foo"))
	assert.False(t, found)

	path, err := tm.findPath(start.Idx, goal.Idx, "")
	require.NoError(t, err)
	assert.Len(t, path, 1)
}

// the classic smart-pointer unwrap chain:
// &mut Rc<RefCell<Foo>> -> &Rc<RefCell<Foo>> -> &RefCell<Foo>
//   -> RefMut<Foo> -> &mut Foo
func TestBuildPathSmartPointerChain(t *testing.T) {
	tm := New(nil)
	tm.AddGenericRule(&GenericRule{
		Param: "T", From: "&Rc<T>", To: "&T",
		Template: "let mut {to_var}: {to_var_type} = {from_var}.as_ref();",
	})
	tm.AddGenericRule(&GenericRule{
		Param: "T", From: "&RefCell<T>", To: "RefMut<T>",
		Template: "let mut {to_var}: {to_var_type} = {from_var}.borrow_mut();",
	})
	tm.AddGenericRule(&GenericRule{
		Param: "T", From: "RefMut<T>", To: "&mut T",
		Template: "let mut {to_var}: {to_var_type} = &mut {from_var};",
	})

	start := tm.FindOrAlloc(types.Parse("&mut Rc<RefCell<Foo>>"))
	goal := tm.FindOrAlloc(types.Parse("&mut Foo"))

	require.True(t, tm.BuildPathIfPossible(start, goal, DefaultStepBudget))

	path, err := tm.findPath(start.Idx, goal.Idx, "")
	require.NoError(t, err)
	require.Len(t, path, 4)

	var stops []string
	for _, id := range path {
		stops = append(stops, tm.nodes[tm.edges[id].to].display())
	}
	assert.Equal(t, []string{
		"&Rc<RefCell<Foo>>",
		"&RefCell<Foo>",
		"RefMut<Foo>",
		"&mut Foo",
	}, stops)
}

func TestBuildPathRespectsStepBudget(t *testing.T) {
	tm := New(nil)
	tm.AddGenericRule(&GenericRule{
		Param: "T", From: "&Rc<T>", To: "&T",
		Template: "let mut {to_var}: {to_var_type} = {from_var}.as_ref();",
	})

	start := tm.FindOrAlloc(types.Parse("&mut Rc<Foo>"))
	goal := tm.FindOrAlloc(types.Parse("&Foo"))

	// needs two rounds: &mut Rc<Foo> -> &Rc<Foo> -> &Foo
	assert.False(t, tm.BuildPathIfPossible(start, goal, 1))
	assert.True(t, tm.BuildPathIfPossible(start, goal, 2))
}

func TestBuildPathHonorsConstraints(t *testing.T) {
	tm := New(nil)
	tm.AddGenericRule(&GenericRule{
		Param: "T", From: "&T", To: "jobject",
		Requires: []string{"SwigForeignClass"},
		Template: "let {to_var}: {to_var_type} = box_object({from_var});",
	})

	start := tm.FindOrAlloc(types.Parse("&Bar"))
	tm.FindOrAlloc(types.Parse("Bar")) // registered but untagged
	goal := tm.FindOrAlloc(types.Parse("jobject"))

	assert.False(t, tm.BuildPathIfPossible(start, goal, DefaultStepBudget))

	tm.FindOrAllocImplements(types.Parse("Bar"), "SwigForeignClass")
	assert.True(t, tm.BuildPathIfPossible(start, goal, DefaultStepBudget))
}
