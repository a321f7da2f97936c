package rt

import (
	"reflect"
)

// cell is the counter shared by every alias of one object.
type cell struct {
	n int
}

// Ref is a counted owning reference to a managed object.
//
// All aliases of an object share one counter whose value is the number of
// live owned references. When Release drops it to zero, the object's
// Delete slot runs immediately and its header is cleared.
//
// The zero Ref is the canonical null: it addresses nothing and has no
// counter. Copying a Ref value with Go assignment does not count; use Copy.
type Ref[T Instance] struct {
	addr T
	rc   *cell
}

// NewRef adopts a freshly constructed object with a count of one. A nil
// address yields the null reference.
func NewRef[T Instance](addr T) Ref[T] {
	if isNil(addr) {
		return Ref[T]{}
	}
	trace("new", addr, 1)
	return Ref[T]{addr: addr, rc: &cell{n: 1}}
}

// Null returns the canonical null reference.
func Null[T Instance]() Ref[T] {
	return Ref[T]{}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// IsNull returns true for the canonical null.
func (r Ref[T]) IsNull() bool {
	return r.rc == nil
}

// Get returns the addressed object without a null check.
func (r Ref[T]) Get() T {
	return r.addr
}

// Must returns the addressed object, raising NullPointerException for null.
func (r Ref[T]) Must() T {
	if r.rc == nil {
		Throw(NullPointerException)
	}
	return r.addr
}

// Count returns the shared counter. Null reports zero.
func (r Ref[T]) Count() int {
	if r.rc == nil {
		return 0
	}
	return r.rc.n
}

// Copy returns a new owned alias of the same object.
func (r Ref[T]) Copy() Ref[T] {
	if r.rc != nil {
		r.rc.n++
		trace("copy", r.addr, r.rc.n)
	}
	return r
}

// Assign makes r alias other. When they already address the same object
// nothing happens. Otherwise the new target is retained before the old one
// is released, so releasing the old target can never destroy the new one.
func (r *Ref[T]) Assign(other Ref[T]) {
	if Same(*r, other) {
		return
	}
	next := other.Copy()
	r.Release()
	*r = next
}

// Release drops this owned reference and leaves r null. The last release
// runs the object's Delete slot.
func (r *Ref[T]) Release() {
	if r.rc == nil {
		return
	}
	r.rc.n--
	trace("release", r.addr, r.rc.n)
	if r.rc.n == 0 {
		destroy(r.addr)
	}
	*r = Ref[T]{}
}

// destroy runs the Delete slot and then detaches the instance from its
// vtable so stale aliases fail loudly instead of dispatching.
func destroy(obj Instance) {
	h := obj.header()
	if vt := h.vptr; vt != nil && vt.Delete != nil {
		vt.Delete(obj)
	}
	h.vptr = nil
	trace("delete", obj, 0)
}

// Object returns a borrowed root-typed view sharing r's counter.
func (r Ref[T]) Object() ObjectRef {
	if r.rc == nil {
		return ObjectRef{}
	}
	return ObjectRef{addr: r.addr, rc: r.rc}
}

// String formats the referenced object through its toString slot.
func (r Ref[T]) String() string {
	return Sprint(r.Object())
}

// assignAny lets arrays assign into reference slots without knowing T.
func (r *Ref[T]) assignAny(v any) {
	r.Assign(v.(Ref[T]))
}

// Same reports address identity, independent of the static element types.
// Two nulls are the same.
func Same[T, U Instance](a Ref[T], b Ref[U]) bool {
	if a.rc == nil || b.rc == nil {
		return a.rc == nil && b.rc == nil
	}
	return Instance(a.addr) == Instance(b.addr)
}

// Convert returns an owned alias of r at another static type. It is the
// unchecked conversion generated code uses for upcasts; a Go type mismatch
// still raises ClassCastException. Use Cast for checked narrowing.
func Convert[U, T Instance](r Ref[T]) Ref[U] {
	if r.rc == nil {
		return Ref[U]{}
	}
	u, ok := any(r.addr).(U)
	if !ok {
		Throw(ClassCastException)
	}
	r.rc.n++
	trace("convert", r.addr, r.rc.n)
	return Ref[U]{addr: u, rc: r.rc}
}
