// Package decl describes the declarations the generator consumes: classes,
// methods, enums and interfaces of the internal language. Parsing them out
// of source text happens upstream; the conversion engine only reads these
// records.
package decl

import (
	"math"

	"github.com/ecumene/rust-swig/errors"
	"github.com/ecumene/rust-swig/types"
)

// MethodVariant distinguishes constructors, instance methods and static
// methods.
type MethodVariant int

const (
	Constructor MethodVariant = iota
	Method
	StaticMethod
)

// SelfVariant is the shape of an instance method's receiver.
type SelfVariant int

const (
	SelfDefault SelfVariant = iota // self
	SelfMut                        // mut self
	SelfRef                        // &self
	SelfRefMut                     // &mut self
)

// ReadOnly reports whether the receiver cannot mutate the instance.
func (s SelfVariant) ReadOnly() bool {
	return s == SelfDefault || s == SelfRef
}

// MethodInfo describes one exported method.
type MethodInfo struct {
	Variant MethodVariant
	Self    SelfVariant
	Name    string
	Args    []types.TypeExpr
	Ret     types.TypeExpr // zero value means the unit return
	Doc     []string
}

// SelfSkip is the "self"-exclusion arity: how many leading arguments are
// the receiver and must not be marshaled.
func (m MethodInfo) SelfSkip() int {
	if m.Variant == Method {
		return 1
	}
	return 0
}

// ClassInfo describes one exported class.
type ClassInfo struct {
	SrcID   string
	Name    string
	Methods []MethodInfo
	// SelfType is the concrete type behind the class, when declared.
	SelfType *types.TypeExpr
	// ConstructorRetType is the constructor's declared return type, e.g.
	// Result<Foo, String> for fn new(..) -> Result<Foo, String>.
	ConstructorRetType *types.TypeExpr
	Doc                []string
	CopyDerived        bool
}

// SelfTypeAsExpr returns the declared self type, or the unit type when the
// class has none.
func (c *ClassInfo) SelfTypeAsExpr() types.TypeExpr {
	if c.SelfType != nil {
		return *c.SelfType
	}
	return types.Unit()
}

// Validate checks the structural rules shared by all target languages.
func (c *ClassInfo) Validate() error {
	var hasConstructor, hasMethods, hasStatic bool
	for _, m := range c.Methods {
		switch m.Variant {
		case Constructor:
			hasConstructor = true
		case Method:
			hasMethods = true
		case StaticMethod:
			hasStatic = true
		}
	}
	switch {
	case c.SelfType == nil && hasConstructor:
		return errors.InvalidDeclaration(c.SrcID, c.Name, "class has constructor, but no self type defined")
	case c.SelfType == nil && hasMethods:
		return errors.InvalidDeclaration(c.SrcID, c.Name, "class has methods, but no self type defined")
	case c.SelfType != nil && !hasConstructor && !hasMethods && !hasStatic:
		return errors.InvalidDeclaration(c.SrcID, c.Name, "class has only a self type, but no methods or constructors")
	}
	return nil
}

// EnumItem is one variant of an exported enum.
type EnumItem struct {
	Name         string
	InternalName string
	Doc          []string
}

// EnumInfo describes one exported enum. Enum values cross the boundary as
// 32-bit signed integers, which bounds the item count.
type EnumInfo struct {
	SrcID string
	Name  string
	Items []EnumItem
	Doc   []string
}

// Validate rejects enums whose item count cannot be represented in a
// 32-bit signed integer on the foreign side.
func (e *EnumInfo) Validate() error {
	return CheckEnumItemCount(e.SrcID, e.Name, int64(len(e.Items)))
}

// CheckEnumItemCount is the bound check behind EnumInfo.Validate, split
// out so the overflow case is testable without allocating 2^31 items.
func CheckEnumItemCount(srcID, name string, n int64) error {
	if n >= int64(math.MaxInt32) {
		return errors.InvalidDeclaration(srcID, name, "too many items in enum")
	}
	return nil
}

// InterfaceMethod is one method of an exported interface. Interface
// methods are always treated as void-returning.
type InterfaceMethod struct {
	Name string
	Args []types.TypeExpr
	Doc  []string
}

// InterfaceInfo describes a foreign-implemented interface (callbacks from
// the internal language into foreign code).
type InterfaceInfo struct {
	SrcID    string
	Name     string
	SelfType types.TypeExpr
	Methods  []InterfaceMethod
	Doc      []string
}
