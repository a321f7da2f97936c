package rt

import (
	"maps"
	"slices"
	"sync"
)

// Method is the uniform signature of a named vtable slot. The receiver is
// borrowed; so are reference arguments.
type Method func(self ObjectRef, args ...any) any

// VTable is the dispatch table shared by every instance of one class.
//
// The four root slots are typed fields; class-specific methods live in
// numbered slots. A derived table starts as a verbatim copy of its parent's
// slots, so slot numbers assigned by an ancestor stay valid for every
// descendant. Overriding replaces one slot's function; it never removes
// a slot.
type VTable struct {
	class  func() ClassRef // resolved on first use
	parent *VTable

	// Delete reclaims what the instance owns. It runs once, when the last
	// reference is released.
	Delete   func(Instance)
	HashCode func(self ObjectRef) int32
	Equals   func(self, other ObjectRef) bool
	GetClass func(self ObjectRef) ClassRef
	ToString func(self ObjectRef) StringRef

	names     []string
	selectors map[string]int
	methods   []Method
}

// NewVTable builds a dispatch table for the class returned by class. The
// class accessor is not called here, which is what lets a class descriptor
// and its table be built in either order. With a nil parent the table gets
// the java.lang.Object defaults; otherwise it copies every parent slot.
//
// The parent must be complete before derived tables are built from it.
func NewVTable(class func() ClassRef, parent *VTable) *VTable {
	vt := &VTable{
		class:     class,
		parent:    parent,
		selectors: make(map[string]int),
	}
	if parent == nil {
		vt.Delete = deleteObject
		vt.HashCode = objectHashCode
		vt.Equals = objectEquals
		vt.GetClass = objectGetClass
		vt.ToString = objectToString
	} else {
		vt.Delete = parent.Delete
		vt.HashCode = parent.HashCode
		vt.Equals = parent.Equals
		vt.GetClass = parent.GetClass
		vt.ToString = parent.ToString
		vt.names = slices.Clone(parent.names)
		vt.methods = slices.Clone(parent.methods)
		maps.Copy(vt.selectors, parent.selectors)
	}
	registerVTable(vt)
	return vt
}

// Class returns the class this table belongs to (borrowed).
func (vt *VTable) Class() ClassRef {
	if vt.class == nil {
		return ClassRef{}
	}
	return vt.class()
}

// Parent returns the table this one was derived from.
func (vt *VTable) Parent() *VTable {
	return vt.parent
}

// AddMethod installs m under name and returns its slot. An existing slot
// with that name (own or inherited) is overridden in place; otherwise a new
// slot is appended.
func (vt *VTable) AddMethod(name string, m Method) int {
	if slot, ok := vt.selectors[name]; ok {
		vt.methods[slot] = m
		return slot
	}
	slot := len(vt.methods)
	vt.names = append(vt.names, name)
	vt.methods = append(vt.methods, m)
	vt.selectors[name] = slot
	return slot
}

// Slot returns the slot number for name, or -1.
func (vt *VTable) Slot(name string) int {
	if slot, ok := vt.selectors[name]; ok {
		return slot
	}
	return -1
}

// Method returns the function in slot, or nil.
func (vt *VTable) Method(slot int) Method {
	if slot >= 0 && slot < len(vt.methods) {
		return vt.methods[slot]
	}
	return nil
}

// SlotName returns the name of slot, or "".
func (vt *VTable) SlotName(slot int) string {
	if slot >= 0 && slot < len(vt.names) {
		return vt.names[slot]
	}
	return ""
}

// NumSlots returns the number of named slots, inherited ones included.
func (vt *VTable) NumSlots() int {
	return len(vt.methods)
}

// SlotNames returns the slot names in slot order.
func (vt *VTable) SlotNames() []string {
	return slices.Clone(vt.names)
}

// ---------------------------------------------------------------------------
// Table registry
// ---------------------------------------------------------------------------

var vtables struct {
	mu     sync.Mutex
	tables []*VTable
}

func registerVTable(vt *VTable) {
	vtables.mu.Lock()
	vtables.tables = append(vtables.tables, vt)
	vtables.mu.Unlock()
}

// VTables returns every table built so far, in construction order.
func VTables() []*VTable {
	vtables.mu.Lock()
	defer vtables.mu.Unlock()
	return slices.Clone(vtables.tables)
}
