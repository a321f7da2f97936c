package rt

import (
	"sync"
)

// Array is a fixed-length, zero-initialized array of T that exclusively
// owns its storage. When T is a reference type the array owns one count on
// every element it holds.
type Array[T any] struct {
	Header
	length int32
	data   []T
}

// ArrayRef is a reference to an array of T.
type ArrayRef[T any] = Ref[*Array[T]]

// NewArray allocates an array whose elements are described by component.
// A negative length raises NegativeArraySizeException before anything is
// allocated.
func NewArray[T any](component ClassRef, length int32) ArrayRef[T] {
	if length < 0 {
		Throw(NegativeArraySizeException)
	}
	vt := arrayTypeOf(component).vt
	a := &Array[T]{length: length, data: make([]T, length)}
	a.Init(vt)
	return NewRef(a)
}

// NewArray2D allocates rows arrays of cols elements each, held by an outer
// array whose component is the inner array class.
func NewArray2D[T any](component ClassRef, rows, cols int32) ArrayRef[ArrayRef[T]] {
	if cols < 0 {
		Throw(NegativeArraySizeException)
	}
	outer := NewArray[ArrayRef[T]](ArrayClassOf(component), rows)
	for i := int32(0); i < rows; i++ {
		inner := NewArray[T](component, cols)
		outer.Get().Set(i, inner)
		inner.Release()
	}
	return outer
}

// Length returns the immutable length.
func (a *Array[T]) Length() int32 {
	return a.length
}

func (a *Array[T]) checkIndex(index int32) {
	if index < 0 || index >= a.length {
		Throw(ArrayIndexOutOfBoundsException)
	}
}

// Get returns the element at index. Reference elements are borrowed.
func (a *Array[T]) Get(index int32) T {
	a.checkIndex(index)
	return a.data[index]
}

// Set stores v at index. Reference elements pass the covariant store check
// and are retained by the array; the previous element is released.
func (a *Array[T]) Set(index int32, v T) {
	a.checkIndex(index)
	if r, ok := any(v).(interface{ Object() ObjectRef }); ok {
		a.checkStore(r.Object())
		any(&a.data[index]).(interface{ assignAny(any) }).assignAny(v)
		return
	}
	a.data[index] = v
}

// checkStore raises ArrayStoreException unless o is null or an instance of
// the component class of the array's runtime class.
func (a *Array[T]) checkStore(o ObjectRef) {
	if o.IsNull() {
		return
	}
	component := a.VPtr().Class().Get().GetComponentType().Get()
	if !component.IsInstance(o) {
		Throw(ArrayStoreException)
	}
}

// releaseStorage releases every reference element and drops the storage.
func (a *Array[T]) releaseStorage() {
	for i := range a.data {
		if r, ok := any(&a.data[i]).(interface{ Release() }); ok {
			r.Release()
		}
	}
	a.data = nil
}

// CheckStore is the store check generated code runs before writing o into
// array.
func CheckStore[T any](array ArrayRef[T], o ObjectRef) {
	array.Must().checkStore(o)
}

// ---------------------------------------------------------------------------
// Array classes
// ---------------------------------------------------------------------------

// arrayType is the canonical class and vtable for arrays of one component.
type arrayType struct {
	class ClassRef
	vt    *VTable
}

var arrayTypes struct {
	mu    sync.Mutex
	types map[*Class]*arrayType
}

// ArrayClassOf returns the canonical array class whose component is
// component (borrowed). Its name follows the JVM convention ("[I",
// "[Ljava.lang.String;"), and its superclass is the array class of the
// component's superclass, so arrays are covariant. Arrays of primitives and
// of the root class extend java.lang.Object.
func ArrayClassOf(component ClassRef) ClassRef {
	return arrayTypeOf(component).class
}

func arrayTypeOf(component ClassRef) *arrayType {
	component.Must()
	root := ObjectClass()
	arrayTypes.mu.Lock()
	defer arrayTypes.mu.Unlock()
	return arrayTypeLocked(component, root)
}

func arrayTypeLocked(component, root ClassRef) *arrayType {
	k := component.Get()
	if t, ok := arrayTypes.types[k]; ok {
		return t
	}
	parent := root
	if !k.primitive && !k.parent.IsNull() {
		parent = arrayTypeLocked(k.parent, root).class
	}

	t := &arrayType{}
	t.class = newClass("["+k.descriptor(), parent, component, false, 0)
	t.vt = NewVTable(func() ClassRef { return t.class }, ObjectVTable())
	t.vt.Delete = deleteArray
	if arrayTypes.types == nil {
		arrayTypes.types = make(map[*Class]*arrayType)
	}
	arrayTypes.types[k] = t
	return t
}

type storageOwner interface {
	releaseStorage()
}

func deleteArray(obj Instance) {
	if a, ok := obj.(storageOwner); ok {
		a.releaseStorage()
	}
}
