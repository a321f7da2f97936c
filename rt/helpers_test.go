package rt

import (
	"errors"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Test class hierarchy: Root -> Mid -> Leaf, plus an unrelated Other.
// ---------------------------------------------------------------------------

// deleted records Delete slot invocations in order, by label.
var deleted []string

func resetDeleted() {
	deleted = nil
}

func deleteCount(label string) int {
	n := 0
	for _, l := range deleted {
		if l == label {
			n++
		}
	}
	return n
}

type Root struct {
	Header
	Label string
}

type Mid struct {
	Root
	Child ObjectRef
}

type Leaf struct {
	Mid
	Weight int32
}

type Other struct {
	Header
}

// RootLike is the static type of a Root-typed reference: any layout that
// starts with Root's fields.
type RootLike interface {
	Instance
	rootPart() *Root
}

func (r *Root) rootPart() *Root {
	return r
}

var rootClass = sync.OnceValue(func() ClassRef {
	return NewClass("Root", ObjectClass())
})

var midClass = sync.OnceValue(func() ClassRef {
	return NewClass("Mid", rootClass())
})

var leafClass = sync.OnceValue(func() ClassRef {
	return NewClass("Leaf", midClass())
})

var otherClass = sync.OnceValue(func() ClassRef {
	return NewClass("Other", ObjectClass())
})

var rootVTable = sync.OnceValue(func() *VTable {
	vt := NewVTable(rootClass, ObjectVTable())
	vt.Delete = func(obj Instance) {
		deleted = append(deleted, obj.(RootLike).rootPart().Label)
	}
	vt.AddMethod("describe", func(self ObjectRef, _ ...any) any {
		return "root"
	})
	vt.AddMethod("label", func(self ObjectRef, _ ...any) any {
		return labelOf(self)
	})
	return vt
})

var midVTable = sync.OnceValue(func() *VTable {
	vt := NewVTable(midClass, rootVTable())
	vt.Delete = func(obj Instance) {
		m := obj.(*Mid)
		deleted = append(deleted, m.Label)
		m.Child.Release()
	}
	vt.ToString = func(self ObjectRef) StringRef {
		return Literal("Mid(" + labelOf(self) + ")")
	}
	vt.AddMethod("describe", func(self ObjectRef, _ ...any) any {
		return "mid"
	})
	vt.AddMethod("child", func(self ObjectRef, _ ...any) any {
		return self.Get().(interface{ child() ObjectRef }).child()
	})
	return vt
})

var leafVTable = sync.OnceValue(func() *VTable {
	vt := NewVTable(leafClass, midVTable())
	vt.Delete = func(obj Instance) {
		l := obj.(*Leaf)
		deleted = append(deleted, l.Label)
		l.Child.Release()
	}
	vt.HashCode = func(self ObjectRef) int32 {
		return 42
	}
	vt.AddMethod("describe", func(self ObjectRef, _ ...any) any {
		return "leaf"
	})
	vt.AddMethod("weight", func(self ObjectRef, _ ...any) any {
		return self.Get().(*Leaf).Weight
	})
	return vt
})

var otherVTable = sync.OnceValue(func() *VTable {
	return NewVTable(otherClass, ObjectVTable())
})

func (m *Mid) child() ObjectRef {
	return m.Child
}

func labelOf(self ObjectRef) string {
	return self.Get().(RootLike).rootPart().Label
}

func newRoot(label string) Ref[*Root] {
	r := &Root{Label: label}
	r.Init(rootVTable())
	return NewRef(r)
}

func newMid(label string) Ref[*Mid] {
	m := &Mid{}
	m.Label = label
	m.Init(midVTable())
	return NewRef(m)
}

func newLeaf(label string) Ref[*Leaf] {
	l := &Leaf{Weight: 7}
	l.Label = label
	l.Init(leafVTable())
	return NewRef(l)
}

func newOther() Ref[*Other] {
	o := &Other{}
	o.Init(otherVTable())
	return NewRef(o)
}

// ---------------------------------------------------------------------------
// Assertions
// ---------------------------------------------------------------------------

// expectRaise runs fn and fails unless it raises an exception of kind.
func expectRaise(t *testing.T, kind Kind, fn func()) {
	t.Helper()
	err := Try(fn)
	if err == nil {
		t.Fatalf("expected %s, nothing was raised", kind)
	}
	var ex *Exception
	if !errors.As(err, &ex) {
		t.Fatalf("expected *Exception, got %T", err)
	}
	if ex.Kind != kind {
		t.Fatalf("raised %s, want %s", ex.Kind, kind)
	}
}

// expectNoRaise fails if fn raises.
func expectNoRaise(t *testing.T, fn func()) {
	t.Helper()
	if err := Try(fn); err != nil {
		t.Fatalf("unexpected %v", err)
	}
}

// expectPanic fails unless fn panics with something other than an
// exception.
func expectPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if _, ok := r.(*Exception); ok {
			t.Fatalf("expected a plain panic, got exception %v", r)
		}
	}()
	fn()
}
