package rt

import (
	"sync"
)

// StringRef is a reference to a java.lang.String.
type StringRef = Ref[*String]

// String is the layout of java.lang.String: an immutable run of chars.
// Chars are runes; Length and CharAt count runes, not bytes.
type String struct {
	Header
	data  string
	runes []rune // built on first indexed access
}

// Literal allocates a string holding s.
func Literal(s string) StringRef {
	str := &String{data: s}
	str.Init(StringVTable())
	return NewRef(str)
}

// String returns the Go string value.
func (s *String) String() string {
	return s.data
}

func (s *String) chars() []rune {
	if s.runes == nil {
		s.runes = []rune(s.data)
	}
	return s.runes
}

// Length returns the number of chars.
func (s *String) Length() int32 {
	return int32(len(s.chars()))
}

// CharAt returns the char at index, raising IndexOutOfBoundsException
// outside [0, Length()).
func (s *String) CharAt(index int32) rune {
	chars := s.chars()
	if index < 0 || int(index) >= len(chars) {
		Throw(IndexOutOfBoundsException)
	}
	return chars[index]
}

// HashCode is the java.lang.String hash: s[0]*31^(n-1) + ... + s[n-1],
// with int32 overflow.
func (s *String) HashCode() int32 {
	var h int32
	for _, c := range s.chars() {
		h = 31*h + int32(c)
	}
	return h
}

// ---------------------------------------------------------------------------
// java.lang.String class and vtable
// ---------------------------------------------------------------------------

var (
	stringClassOnce sync.Once
	stringClass     ClassRef

	stringVTOnce sync.Once
	stringVT     *VTable
)

// StringClass returns the descriptor of java.lang.String.
func StringClass() ClassRef {
	stringClassOnce.Do(func() {
		stringClass = NewClass("java.lang.String", ObjectClass())
	})
	return stringClass
}

// StringVTable returns the dispatch table of java.lang.String.
func StringVTable() *VTable {
	stringVTOnce.Do(func() {
		vt := NewVTable(StringClass, ObjectVTable())
		vt.HashCode = func(self ObjectRef) int32 {
			return stringOf(self).HashCode()
		}
		vt.Equals = func(self, other ObjectRef) bool {
			o, ok := other.Get().(*String)
			return ok && stringOf(self).data == o.data
		}
		vt.ToString = func(self ObjectRef) StringRef {
			return Convert[*String](self)
		}
		vt.AddMethod("length", func(self ObjectRef, _ ...any) any {
			return stringOf(self).Length()
		})
		vt.AddMethod("charAt", func(self ObjectRef, args ...any) any {
			return stringOf(self).CharAt(args[0].(int32))
		})
		stringVT = vt
	})
	return stringVT
}

func stringOf(self ObjectRef) *String {
	return self.Get().(*String)
}

// ---------------------------------------------------------------------------
// Conversions and concatenation
// ---------------------------------------------------------------------------

// StringOf converts o with toString, or to "null". The caller owns the
// result.
func StringOf(o ObjectRef) StringRef {
	if o.IsNull() {
		return Literal("null")
	}
	return ToString(o)
}

// StringOfBool converts a boolean the way string concatenation does.
func StringOfBool(b bool) StringRef {
	if b {
		return Literal("true")
	}
	return Literal("false")
}

// Concat returns a new string holding a followed by b; null operands read
// as "null".
func Concat(a, b StringRef) StringRef {
	return Literal(goString(a) + goString(b))
}

func goString(s StringRef) string {
	if s.IsNull() {
		return "null"
	}
	return s.Get().data
}

// Sprint returns the Go text of o's toString, or "null".
func Sprint(o ObjectRef) string {
	s := StringOf(o)
	defer s.Release()
	return s.Get().data
}
