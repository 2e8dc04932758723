// Package jni seeds a conversion engine with the Java/JNI rule set and
// registers exported classes and enums: heap-pointer bridging for class
// instances, jint bridging for enums, and JNI method descriptors.
package jni

import (
	"github.com/ecumene/rust-swig/typemap"
	"github.com/ecumene/rust-swig/types"
)

// ForeignClassCapability tags types whose instances cross the boundary
// as generated Java classes.
const ForeignClassCapability = "SwigForeignClass"

// jniPrimitives maps internal primitives to their JNI carrier type and
// Java spelling. Conversions are plain casts except bool.
var jniPrimitives = []struct {
	internal string
	carrier  string
	java     string
}{
	{"i8", "jbyte", "byte"},
	{"i16", "jshort", "short"},
	{"i32", "jint", "int"},
	{"i64", "jlong", "long"},
	{"f32", "jfloat", "float"},
	{"f64", "jdouble", "double"},
	{"u8", "jshort", "short"},
	{"u16", "jint", "int"},
	{"u32", "jlong", "long"},
}

// Seed builds the built-in JNI rule batch: primitive casts in both
// directions, bool bridging, smart-pointer unwrap rules for class self
// types, and the foreign object/array family rules.
func Seed() *typemap.RuleBatch {
	batch := &typemap.RuleBatch{}

	for _, p := range jniPrimitives {
		in := types.Parse(p.internal)
		out := types.Parse(p.carrier)
		batch.Nodes = append(batch.Nodes,
			typemap.BatchNode{Expr: in},
			typemap.BatchNode{Expr: out, Foreign: p.java},
		)
		batch.Edges = append(batch.Edges,
			typemap.BatchEdge{
				From:     in,
				To:       out,
				Template: "let {to_var}: {to_var_type} = {from_var} as {to_var_type};",
			},
			typemap.BatchEdge{
				From:     out,
				To:       in,
				Template: "let {to_var}: {to_var_type} = {from_var} as {to_var_type};",
			},
		)
	}

	boolT := types.Parse("bool")
	jboolean := types.Parse("jboolean")
	batch.Nodes = append(batch.Nodes,
		typemap.BatchNode{Expr: boolT},
		typemap.BatchNode{Expr: jboolean, Foreign: "boolean"},
	)
	batch.Edges = append(batch.Edges,
		typemap.BatchEdge{
			From:     boolT,
			To:       jboolean,
			Template: "let {to_var}: {to_var_type} = if {from_var} { 1 as jboolean } else { 0 as jboolean };",
		},
		typemap.BatchEdge{
			From:     jboolean,
			To:       boolT,
			Template: "let {to_var}: {to_var_type} = {from_var} != 0;",
		},
	)

	batch.Generics = cellRules()
	batch.Generics = append(batch.Generics, foreignFamilyRules()...)
	return batch
}

// cellRules unwrap the smart-pointer shells class self types hide in.
func cellRules() []*typemap.GenericRule {
	mk := func(from, to, template string) *typemap.GenericRule {
		r := typemap.NewGenericRule("T", from, to, template)
		r.Requires = []string{ForeignClassCapability}
		return r
	}
	return []*typemap.GenericRule{
		mk("&Rc<T>", "&T",
			"let mut {to_var}: {to_var_type} = {from_var}.as_ref();"),
		mk("&Rc<RefCell<T>>", "&RefCell<T>",
			"let mut {to_var}: {to_var_type} = {from_var}.as_ref();"),
		mk("&RefCell<T>", "Ref<T>",
			"let mut {to_var}: {to_var_type} = {from_var}.borrow();"),
		mk("&RefCell<T>", "RefMut<T>",
			"let mut {to_var}: {to_var_type} = {from_var}.borrow_mut();"),
		mk("Ref<T>", "&T",
			"let mut {to_var}: {to_var_type} = &{from_var};"),
		mk("RefMut<T>", "&mut T",
			"let mut {to_var}: {to_var_type} = &mut {from_var};"),
		mk("&Arc<Mutex<T>>", "MutexGuard<T>",
			"let mut {to_var}: {to_var_type} = {from_var}.lock().unwrap();"),
		mk("MutexGuard<T>", "&T",
			"let mut {to_var}: {to_var_type} = &{from_var};"),
	}
}

// foreignFamilyRules map class references and vectors of classes onto
// the shared JNI object types; the hint names the Java-side type per
// bound class.
func foreignFamilyRules() []*typemap.GenericRule {
	obj := typemap.NewGenericRule("T", "&T", "jobject",
		"let {to_var}: {to_var_type} = object_to_jobject({from_var}, env);")
	obj.Requires = []string{ForeignClassCapability}
	obj.ForeignHint = "T"

	arr := typemap.NewGenericRule("T", "Vec<T>", "jobjectArray",
		"let {to_var}: {to_var_type} = vec_of_objects_to_jobject_array({from_var}, env);")
	arr.Requires = []string{ForeignClassCapability}
	arr.ForeignHint = "T []"

	return []*typemap.GenericRule{obj, arr}
}

// Setup merges the built-in JNI rules into a fresh engine and returns
// the merge report.
func Setup(tm *typemap.TypeMap) *typemap.MergeReport {
	return tm.Merge("jni builtin rules", Seed())
}
