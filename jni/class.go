package jni

import (
	"fmt"

	"github.com/ecumene/rust-swig/decl"
	"github.com/ecumene/rust-swig/logger"
	"github.com/ecumene/rust-swig/typemap"
	"github.com/ecumene/rust-swig/types"
)

// RegisterClass wires one exported class into the engine: the self type
// gains the foreign-class capability, and the class instance is bridged
// over a heap pointer carried in a jlong. Each class gets its own jlong
// node so two classes never share a pointer edge.
func RegisterClass(tm *typemap.TypeMap, class *decl.ClassInfo) error {
	if err := class.Validate(); err != nil {
		return err
	}
	logger.Debugw("register class", "class", class.Name)

	self := class.SelfTypeAsExpr()
	this := self
	if class.ConstructorRetType != nil {
		this = *class.ConstructorRetType
	}

	tm.FindOrAllocImplements(self, ForeignClassCapability)
	if this.Normalized != self.Normalized {
		tm.FindOrAllocImplements(this, ForeignClassCapability)
	}

	jlongExpr := types.Parse("jlong")
	ptr := tm.FindOrAllocWithSuffix(jlongExpr, class.Name)
	tm.AddForeign(ptr, class.Name)

	owned := tm.FindOrAlloc(this)
	tm.AddConversionRule(owned, ptr,
		"let {to_var}: {to_var_type} = Box::into_raw(Box::new({from_var})) as jlong;", "")

	ref := tm.FindOrAlloc(types.Parse("&"+this.Normalized))
	tm.AddConversionRule(ptr, ref, fmt.Sprintf(
		"let {to_var}: {to_var_type} = unsafe { &*({from_var} as *const %s) };", this.Normalized), "")

	mutRef := tm.FindOrAlloc(types.Parse("&mut " + this.Normalized))
	tm.AddConversionRule(ptr, mutRef, fmt.Sprintf(
		"let {to_var}: {to_var_type} = unsafe { &mut *({from_var} as *mut %s) };", this.Normalized), "")

	if class.CopyDerived {
		tm.AddConversionRule(ref, owned,
			"let {to_var}: {to_var_type} = {from_var}.clone();", "")
	}

	tm.RegisterClass(class)
	return nil
}
