package rt

import (
	"fmt"
	"sync"
	"unsafe"
)

// Header is the first field of every managed instance. It holds the
// pointer to the class's shared dispatch table; that pointer is the only
// source of polymorphism in the model.
type Header struct {
	vptr *VTable
}

// Init installs the class's static vtable. Constructors call it before
// handing the instance to NewRef.
func (h *Header) Init(vt *VTable) {
	h.vptr = vt
}

// VPtr returns the instance's dispatch table. It is nil once the instance
// has been destroyed.
func (h *Header) VPtr() *VTable {
	return h.vptr
}

func (h *Header) header() *Header {
	return h
}

// Instance is implemented by every type that embeds Header.
type Instance interface {
	VPtr() *VTable
	header() *Header
}

// ObjectRef is a reference typed as the root class.
type ObjectRef = Ref[Instance]

// Object is the layout of java.lang.Object: a header and nothing else.
type Object struct {
	Header
}

// NewObject allocates a plain java.lang.Object.
func NewObject() ObjectRef {
	o := &Object{}
	o.Init(ObjectVTable())
	return NewRef[Instance](o)
}

// ---------------------------------------------------------------------------
// java.lang.Object class and vtable
// ---------------------------------------------------------------------------

var (
	objectClassOnce sync.Once
	objectClass     ClassRef

	objectVTOnce sync.Once
	objectVT     *VTable
)

// ObjectClass returns the root class descriptor.
func ObjectClass() ClassRef {
	objectClassOnce.Do(func() {
		objectClass = NewClass("java.lang.Object", ClassRef{})
	})
	return objectClass
}

// ObjectVTable returns the root dispatch table. Every other table derives
// from it.
func ObjectVTable() *VTable {
	objectVTOnce.Do(func() {
		objectVT = NewVTable(ObjectClass, nil)
	})
	return objectVT
}

// ---------------------------------------------------------------------------
// Root slot defaults
// ---------------------------------------------------------------------------

// deleteObject has nothing to reclaim: a root instance owns no fields.
func deleteObject(Instance) {}

func objectHashCode(self ObjectRef) int32 {
	return identityHash(self.Get())
}

func objectEquals(self, other ObjectRef) bool {
	return Same(self, other)
}

func objectGetClass(self ObjectRef) ClassRef {
	return self.Get().VPtr().Class()
}

func objectToString(self ObjectRef) StringRef {
	k := GetClass(self).Get()
	return Literal(fmt.Sprintf("%s@%x", k.GetName(), uint32(HashCode(self))))
}

// identityHash folds the instance address into 32 bits. The address is
// stable for the object's lifetime.
func identityHash(obj Instance) int32 {
	p := uint64(uintptr(unsafe.Pointer(obj.header())))
	return int32(uint32(p ^ p>>32))
}
