package rt

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// Exception taxonomy
// ---------------------------------------------------------------------------

// Kind identifies one member of the closed exception taxonomy.
type Kind uint8

const (
	RuntimeException Kind = iota
	NullPointerException
	IndexOutOfBoundsException
	ArrayIndexOutOfBoundsException
	NegativeArraySizeException
	ArrayStoreException
	ClassCastException

	numKinds
)

var kindNames = [numKinds]string{
	RuntimeException:               "java.lang.RuntimeException",
	NullPointerException:           "java.lang.NullPointerException",
	IndexOutOfBoundsException:      "java.lang.IndexOutOfBoundsException",
	ArrayIndexOutOfBoundsException: "java.lang.ArrayIndexOutOfBoundsException",
	NegativeArraySizeException:     "java.lang.NegativeArraySizeException",
	ArrayStoreException:            "java.lang.ArrayStoreException",
	ClassCastException:             "java.lang.ClassCastException",
}

// kindParents maps each kind to its parent; RuntimeException maps to itself.
var kindParents = [numKinds]Kind{
	RuntimeException:               RuntimeException,
	NullPointerException:           RuntimeException,
	IndexOutOfBoundsException:      RuntimeException,
	ArrayIndexOutOfBoundsException: IndexOutOfBoundsException,
	NegativeArraySizeException:     RuntimeException,
	ArrayStoreException:            RuntimeException,
	ClassCastException:             RuntimeException,
}

// String returns the qualified name of the kind.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Parent returns the kind k specializes. The root reports false.
func (k Kind) Parent() (Kind, bool) {
	if k >= numKinds || k == RuntimeException {
		return k, false
	}
	return kindParents[k], true
}

// IsA returns true if k is other or a descendant of other.
func (k Kind) IsA(other Kind) bool {
	for current, ok := k, true; ok; current, ok = current.Parent() {
		if current == other {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Exception values
// ---------------------------------------------------------------------------

// Exception is a raised member of the taxonomy. It carries nothing but
// its kind.
type Exception struct {
	Kind Kind
}

// Error implements error.
func (e *Exception) Error() string {
	return e.Kind.String()
}

// Is lets errors.Is match an exception against any ancestor kind, so
// ErrIndexOutOfBounds matches an ArrayIndexOutOfBoundsException.
func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	return ok && e.Kind.IsA(t.Kind)
}

// Sentinels for errors.Is.
var (
	ErrRuntime               = &Exception{Kind: RuntimeException}
	ErrNullPointer           = &Exception{Kind: NullPointerException}
	ErrIndexOutOfBounds      = &Exception{Kind: IndexOutOfBoundsException}
	ErrArrayIndexOutOfBounds = &Exception{Kind: ArrayIndexOutOfBoundsException}
	ErrNegativeArraySize     = &Exception{Kind: NegativeArraySizeException}
	ErrArrayStore            = &Exception{Kind: ArrayStoreException}
	ErrClassCast             = &Exception{Kind: ClassCastException}
)

// ---------------------------------------------------------------------------
// Raising and catching (Go panic/recover)
// ---------------------------------------------------------------------------

// Throw raises an exception of the given kind. The runtime never catches
// what it throws; the panic unwinds to the caller's nearest Try or Recover,
// or terminates the program.
func Throw(kind Kind) {
	log.Debugf("raise %s", kind)
	panic(&Exception{Kind: kind})
}

// Try runs fn and returns the exception it raised, if any. Panics that are
// not exceptions keep unwinding.
func Try(fn func()) (err error) {
	defer Recover(&err)
	fn()
	return nil
}

// Recover stores a raised exception into *errp. It must be deferred
// directly:
//
//	defer rt.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if ex, ok := r.(*Exception); ok {
		*errp = ex
		return
	}
	panic(r)
}
