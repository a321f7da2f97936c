// Package rt implements the qimpp managed-object runtime.
//
// This package contains:
//   - Ref, the counted ownership handle every object reference goes through
//   - The object layout convention: Header first, pointing at a shared VTable
//   - Class descriptors and the reflection queries they answer
//   - Typed arrays with bounds and covariant store checks
//   - The closed exception taxonomy raised by all of the above
//
// # Ownership
//
// Go has no copy constructors or destructors, so the counting is explicit.
// NewRef and Copy produce owned references; every owned reference must be
// paired with exactly one Release. Functions that allocate (NewObject,
// NewArray, Literal, ToString, Cast, Convert) return owned references.
// Accessors (Ref.Object, Array.Get, GetClass, Class.GetSuperclass) return
// borrowed references: use them immediately or Copy them to keep them.
// Passing a reference as an argument borrows it.
//
// Reference counting is not synchronized. Sharing references across
// goroutines requires external locking. Cycles are never reclaimed; break
// them by hand before releasing the last outside reference.
//
// # Writing a class
//
// A class is a struct embedding Header as its first field, a lazily built
// class accessor, and a vtable built once from its parent's:
//
//	type Point struct {
//		rt.Header
//		X, Y int32
//	}
//
//	var PointClass = sync.OnceValue(func() rt.ClassRef {
//		return rt.NewClass("Point", rt.ObjectClass())
//	})
//
//	var pointVTable = sync.OnceValue(func() *rt.VTable {
//		vt := rt.NewVTable(PointClass, rt.ObjectVTable())
//		vt.ToString = pointToString
//		return vt
//	})
//
//	func NewPoint(x, y int32) rt.Ref[*Point] {
//		p := &Point{X: x, Y: y}
//		p.Init(pointVTable())
//		return rt.NewRef(p)
//	}
//
// A derived class embeds its parent's struct, so its fields extend the
// parent's layout. Go embedding is not subtyping, though: a Ref[*Point]
// cannot hold a *Point3D. A class whose references must accept derived
// instances declares an interface for its static type (Instance plus an
// unexported accessor for the embedded parent) and uses Ref of that
// interface, or ObjectRef.
package rt
