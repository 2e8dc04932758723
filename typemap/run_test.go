package typemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

func TestConvertValueExpandsTemplates(t *testing.T) {
	tm := New(nil)
	b := tm.FindOrAlloc(types.Parse("bool"))
	jb := tm.FindOrAlloc(types.Parse("jboolean"))
	tm.AddConversionRule(b, jb,
		"let {to_var}: {to_var_type} = if {from_var} { 1 } else { 0 };", "")

	run := tm.NewRun()
	deps, code, err := run.ConvertValue(b, jb, "x", "jboolean", "f / ret")
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.Equal(t, "    let x: jboolean = if x { 1 } else { 0 };\n", code)
}

func TestConvertValueStripsSuffixFromTargetType(t *testing.T) {
	tm := New(nil)
	foo := tm.FindOrAlloc(types.Parse("&Foo"))
	obj := tm.FindOrAllocWithSuffix(types.Parse("jobject"), "Foo")
	tm.AddConversionRule(foo, obj,
		"let {to_var}: {to_var_type} = box_object({from_var});", "")

	run := tm.NewRun()
	_, code, err := run.ConvertValue(foo, obj, "this", "jobject", "")
	require.NoError(t, err)
	assert.Contains(t, code, "let this: jobject =")
	assert.NotContains(t, code, "#")
}

func TestConvertValueEmitsDependencyOncePerRun(t *testing.T) {
	tm := New(nil)
	a := tm.FindOrAlloc(types.Parse("A"))
	b := tm.FindOrAlloc(types.Parse("B"))
	tm.AddConversionRule(a, b,
		"let {to_var}: {to_var_type} = conv({from_var});",
		"use crate::conv;")

	run := tm.NewRun()
	deps, _, err := run.ConvertValue(a, b, "x", "B", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"use crate::conv;"}, deps)

	deps, _, err = run.ConvertValue(a, b, "y", "B", "")
	require.NoError(t, err)
	assert.Empty(t, deps)

	// a fresh run gets the fragment again
	deps, _, err = tm.NewRun().ConvertValue(a, b, "z", "B", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"use crate::conv;"}, deps)
}

func TestConvertValueBuildsPathOnMiss(t *testing.T) {
	tm := New(nil)
	start := tm.FindOrAlloc(types.Parse("&mut Foo"))
	goal := tm.FindOrAlloc(types.Parse("&Foo"))
	require.Equal(t, 0, tm.EdgeCount())

	run := tm.NewRun()
	_, code, err := run.ConvertValue(start, goal, "v", "void", "")
	require.NoError(t, err)
	assert.Equal(t, "    let mut v: &Foo = v;\n", code)
	assert.Equal(t, 1, tm.EdgeCount())
}

func TestConvertValueFailure(t *testing.T) {
	tm := New(nil)
	a := tm.FindOrAlloc(types.Parse("Vec<i32>"))
	b := tm.FindOrAlloc(types.Parse("jint"))

	run := tm.NewRun()
	_, _, err := run.ConvertValue(a, b, "x", "jint", "f / arg x")
	require.Error(t, err)
	assert.True(t, errors.IsNoConversionPath(err))
}

func TestRunsHaveDistinctIDs(t *testing.T) {
	tm := New(nil)
	assert.NotEqual(t, tm.NewRun().ID, tm.NewRun().ID)
}
