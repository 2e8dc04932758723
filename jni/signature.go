package jni

import (
	"strings"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/typemap"
)

// Descriptor is the JNI type descriptor for a Java type spelling.
// Non-primitive names resolve to classes in pkg; the " []" suffix the
// array family rules produce becomes an array descriptor.
func Descriptor(javaName, pkg string) string {
	switch javaName {
	case "void":
		return "V"
	case "boolean":
		return "Z"
	case "byte":
		return "B"
	case "short":
		return "S"
	case "int":
		return "I"
	case "long":
		return "J"
	case "float":
		return "F"
	case "double":
		return "D"
	case "String":
		return "Ljava/lang/String;"
	}
	if s, ok := strings.CutSuffix(javaName, " []"); ok {
		return "[" + Descriptor(s, pkg)
	}
	if pkg == "" {
		return "L" + javaName + ";"
	}
	return "L" + strings.ReplaceAll(pkg, ".", "/") + "/" + javaName + ";"
}

// MethodSignature resolves the foreign types of a method's arguments and
// return value and assembles the JNI method descriptor, e.g. "(IZ)J".
func MethodSignature(tm *typemap.TypeMap, m decl.MethodInfo, pkg string) (string, error) {
	var b strings.Builder
	b.WriteByte('(')
	for _, arg := range m.Args[m.SelfSkip():] {
		h := tm.FindOrAlloc(arg)
		fti, err := tm.MapToForeign(h, typemap.Incoming)
		if err != nil {
			return "", err
		}
		b.WriteString(Descriptor(fti.Name, pkg))
	}
	b.WriteByte(')')

	if m.Ret.IsZero() || m.Ret.IsUnit() {
		b.WriteByte('V')
		return b.String(), nil
	}
	h := tm.FindOrAlloc(m.Ret)
	fti, err := tm.MapToForeign(h, typemap.Outgoing)
	if err != nil {
		return "", err
	}
	b.WriteString(Descriptor(fti.Name, pkg))
	return b.String(), nil
}
