package jni

import (
	"fmt"
	"strings"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/logger"
	"github.com/ecumene/rust-swig/typemap"
	"github.com/ecumene/rust-swig/types"
)

// RegisterEnum wires one exported enum into the engine. Enum values
// cross the boundary as jint; the incoming direction goes through a
// generated match helper emitted once per run as the edge's dependency.
func RegisterEnum(tm *typemap.TypeMap, enum *decl.EnumInfo) error {
	if err := enum.Validate(); err != nil {
		return err
	}
	logger.Debugw("register enum", "enum", enum.Name, "items", len(enum.Items))

	enumExpr := types.Parse(enum.Name)
	e := tm.FindOrAlloc(enumExpr)
	jintExpr := types.Parse("jint")
	carrier := tm.FindOrAllocWithSuffix(jintExpr, enum.Name)
	tm.AddForeign(carrier, enum.Name)

	tm.AddConversionRule(e, carrier,
		"let {to_var}: {to_var_type} = ({from_var} as i32) as jint;", "")
	tm.AddConversionRule(carrier, e, fmt.Sprintf(
		"let {to_var}: {to_var_type} = %s({from_var});", fromJintHelper(enum.Name)),
		fromJintHelperCode(enum))

	tm.RegisterEnum(enum)
	return nil
}

func fromJintHelper(enumName string) string {
	return strings.ToLower(enumName) + "_from_jint"
}

// fromJintHelperCode is the one-time helper mapping a jint back onto the
// enum's variants.
func fromJintHelperCode(enum *decl.EnumInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s(v: jint) -> %s {\n", fromJintHelper(enum.Name), enum.Name)
	b.WriteString("    match v {\n")
	for i, item := range enum.Items {
		name := item.InternalName
		if name == "" {
			name = enum.Name + "::" + item.Name
		}
		fmt.Fprintf(&b, "        %d => %s,\n", i, name)
	}
	fmt.Fprintf(&b, "        _ => panic!(\"invalid {} value: {}\", \"%s\", v),\n", enum.Name)
	b.WriteString("    }\n}\n")
	return b.String()
}
