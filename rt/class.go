package rt

import (
	"slices"
	"strings"
	"sync"
)

// ClassRef is a reference to a class descriptor.
type ClassRef = Ref[*Class]

// Class is the runtime descriptor of a class, itself a managed object of
// class java.lang.Class. Descriptors are canonical (one per class), built
// on first use and never destroyed.
type Class struct {
	Header
	name      string
	parent    ClassRef // null only for the root and for primitives
	component ClassRef // non-null only for array classes
	primitive bool
	desc      byte // JVM descriptor letter, primitives only
}

// NewClass builds and registers the descriptor for a reference class.
// A null parent makes a root; the model itself has exactly one, so
// user classes pass ObjectClass() or a descendant.
func NewClass(name string, parent ClassRef) ClassRef {
	return newClass(name, parent, ClassRef{}, false, 0)
}

func newClass(name string, parent, component ClassRef, primitive bool, desc byte) ClassRef {
	k := &Class{
		name:      name,
		parent:    parent.Copy(),
		component: component.Copy(),
		primitive: primitive,
		desc:      desc,
	}
	k.Init(ClassVTable())
	ref := NewRef(k)
	registerClass(ref)
	return ref
}

// GetName returns the class name.
func (k *Class) GetName() string {
	return k.name
}

// GetSuperclass returns the parent class (borrowed), or null for the root
// and for primitives.
func (k *Class) GetSuperclass() ClassRef {
	return k.parent
}

// IsPrimitive reports whether k describes a primitive type.
func (k *Class) IsPrimitive() bool {
	return k.primitive
}

// IsArray reports whether k describes an array type.
func (k *Class) IsArray() bool {
	return !k.component.IsNull()
}

// GetComponentType returns the element class of an array class (borrowed),
// or null for any other class.
func (k *Class) GetComponentType() ClassRef {
	return k.component
}

// IsSubclassOf returns true if k is other or one of its descendants.
// The walk is bounded by the depth of the class tree.
func (k *Class) IsSubclassOf(other *Class) bool {
	for current := k; current != nil; current = current.parent.Get() {
		if current == other {
			return true
		}
	}
	return false
}

// IsAssignableFrom returns true if instances of other are instances of k.
func (k *Class) IsAssignableFrom(other *Class) bool {
	return other != nil && other.IsSubclassOf(k)
}

// IsInstance returns true if o is non-null and its runtime class is k or
// a descendant of k.
func (k *Class) IsInstance(o ObjectRef) bool {
	if o.IsNull() || o.Get().VPtr() == nil {
		return false
	}
	return GetClass(o).Get().IsSubclassOf(k)
}

// String returns "class <name>", or just the name for primitives.
func (k *Class) String() string {
	if k.primitive {
		return k.name
	}
	return "class " + k.name
}

// descriptor returns the JVM type descriptor used to name array classes.
func (k *Class) descriptor() string {
	switch {
	case k.primitive:
		return string(k.desc)
	case k.IsArray():
		return k.name
	default:
		return "L" + k.name + ";"
	}
}

// ---------------------------------------------------------------------------
// java.lang.Class class and vtable
// ---------------------------------------------------------------------------

var (
	classClassOnce sync.Once
	classClass     ClassRef

	classVTOnce sync.Once
	classVT     *VTable
)

// ClassClass returns the descriptor of java.lang.Class.
func ClassClass() ClassRef {
	classClassOnce.Do(func() {
		classClass = NewClass("java.lang.Class", ObjectClass())
	})
	return classClass
}

// ClassVTable returns the dispatch table shared by all class descriptors.
// Reflection is available through it as named slots.
func ClassVTable() *VTable {
	classVTOnce.Do(func() {
		vt := NewVTable(ClassClass, ObjectVTable())
		vt.Delete = deleteClass
		vt.ToString = func(self ObjectRef) StringRef {
			return Literal(classOf(self).String())
		}
		vt.AddMethod("getName", func(self ObjectRef, _ ...any) any {
			return Literal(classOf(self).GetName())
		})
		vt.AddMethod("getSuperclass", func(self ObjectRef, _ ...any) any {
			return classOf(self).GetSuperclass()
		})
		vt.AddMethod("isPrimitive", func(self ObjectRef, _ ...any) any {
			return classOf(self).IsPrimitive()
		})
		vt.AddMethod("isArray", func(self ObjectRef, _ ...any) any {
			return classOf(self).IsArray()
		})
		vt.AddMethod("getComponentType", func(self ObjectRef, _ ...any) any {
			return classOf(self).GetComponentType()
		})
		vt.AddMethod("isInstance", func(self ObjectRef, args ...any) any {
			return classOf(self).IsInstance(args[0].(ObjectRef))
		})
		classVT = vt
	})
	return classVT
}

func classOf(self ObjectRef) *Class {
	return self.Get().(*Class)
}

// deleteClass only runs if a caller over-releases a descriptor.
func deleteClass(obj Instance) {
	k := obj.(*Class)
	k.parent.Release()
	k.component.Release()
}

// ---------------------------------------------------------------------------
// Class registry
// ---------------------------------------------------------------------------

var classes struct {
	mu     sync.Mutex
	byName map[string]ClassRef
}

func registerClass(k ClassRef) {
	name := k.Get().name
	classes.mu.Lock()
	defer classes.mu.Unlock()
	if classes.byName == nil {
		classes.byName = make(map[string]ClassRef)
	}
	if _, exists := classes.byName[name]; exists {
		log.Warningf("class %s registered twice; keeping the first descriptor", name)
		return
	}
	classes.byName[name] = k
	log.Infof("registered class %s", name)
}

// ForName returns the registered class with the given name (borrowed).
func ForName(name string) (ClassRef, bool) {
	classes.mu.Lock()
	defer classes.mu.Unlock()
	k, ok := classes.byName[name]
	return k, ok
}

// Classes returns every registered class sorted by name.
func Classes() []ClassRef {
	classes.mu.Lock()
	result := make([]ClassRef, 0, len(classes.byName))
	for _, k := range classes.byName {
		result = append(result, k)
	}
	classes.mu.Unlock()
	slices.SortFunc(result, func(a, b ClassRef) int {
		return strings.Compare(a.Get().name, b.Get().name)
	})
	return result
}

// Bootstrap builds every built-in class and vtable so registry queries
// see them before any program object exists.
func Bootstrap() {
	ObjectVTable()
	ClassClass()
	ClassVTable()
	StringVTable()
	for p := range numPrimitives {
		primitiveClass(p)
	}
}
