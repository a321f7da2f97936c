package rt

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Dynamic dispatch
// ---------------------------------------------------------------------------
//
// Every call below reads the table from the receiver's header, never from
// the static type of the reference, so an override installed by a derived
// class always wins.

// CheckNotNull raises NullPointerException if r is the canonical null.
func CheckNotNull[T Instance](r Ref[T]) {
	if r.IsNull() {
		Throw(NullPointerException)
	}
}

// vtableOf null-checks o and returns its runtime table.
func vtableOf(o ObjectRef) *VTable {
	CheckNotNull(o)
	vt := o.Get().VPtr()
	if vt == nil {
		panic(fmt.Sprintf("rt: dispatch on destroyed object %p", o.Get()))
	}
	return vt
}

// HashCode dispatches hashCode.
func HashCode(o ObjectRef) int32 {
	return vtableOf(o).HashCode(o)
}

// Equals dispatches equals on o.
func Equals(o, other ObjectRef) bool {
	return vtableOf(o).Equals(o, other)
}

// GetClass dispatches getClass. The descriptor is borrowed.
func GetClass(o ObjectRef) ClassRef {
	return vtableOf(o).GetClass(o)
}

// ToString dispatches toString. The caller owns the result.
func ToString(o ObjectRef) StringRef {
	return vtableOf(o).ToString(o)
}

// Send invokes the method in slot through o's runtime table.
func Send(o ObjectRef, slot int, args ...any) any {
	vt := vtableOf(o)
	m := vt.Method(slot)
	if m == nil {
		panic(fmt.Sprintf("rt: %s has no method in slot %d", vt.Class().Get().GetName(), slot))
	}
	return m(o, args...)
}

// SendName looks the selector up in o's runtime table and invokes it.
func SendName(o ObjectRef, name string, args ...any) any {
	vt := vtableOf(o)
	slot := vt.Slot(name)
	if slot < 0 {
		panic(fmt.Sprintf("rt: %s does not understand %s", vt.Class().Get().GetName(), name))
	}
	return vt.methods[slot](o, args...)
}

// ---------------------------------------------------------------------------
// Checked conversion
// ---------------------------------------------------------------------------

// Cast narrows o to U after checking it against class k, raising
// ClassCastException when k does not accept it. Null always converts.
// The result is an owned alias.
func Cast[U Instance](k ClassRef, o ObjectRef) Ref[U] {
	if !o.IsNull() && !k.Must().IsInstance(o) {
		Throw(ClassCastException)
	}
	return Convert[U](o)
}

// InstanceOf is the instanceof operator: o is non-null and k accepts it.
func InstanceOf(o ObjectRef, k ClassRef) bool {
	return k.Must().IsInstance(o)
}
