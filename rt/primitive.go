package rt

import "sync"

// Primitive class descriptors (Integer.TYPE and friends). They have no
// superclass and exist so arrays of primitives can name a component type.

type primitiveKind int

const (
	primBoolean primitiveKind = iota
	primByte
	primChar
	primShort
	primInt
	primLong
	primFloat
	primDouble
	numPrimitives
)

var primitiveInfo = [numPrimitives]struct {
	name string
	desc byte
}{
	primBoolean: {"boolean", 'Z'},
	primByte:    {"byte", 'B'},
	primChar:    {"char", 'C'},
	primShort:   {"short", 'S'},
	primInt:     {"int", 'I'},
	primLong:    {"long", 'J'},
	primFloat:   {"float", 'F'},
	primDouble:  {"double", 'D'},
}

var (
	primitiveOnce    [numPrimitives]sync.Once
	primitiveClasses [numPrimitives]ClassRef
)

func primitiveClass(p primitiveKind) ClassRef {
	primitiveOnce[p].Do(func() {
		info := primitiveInfo[p]
		primitiveClasses[p] = newClass(info.name, ClassRef{}, ClassRef{}, true, info.desc)
	})
	return primitiveClasses[p]
}

func BooleanType() ClassRef { return primitiveClass(primBoolean) }
func ByteType() ClassRef    { return primitiveClass(primByte) }
func CharType() ClassRef    { return primitiveClass(primChar) }
func ShortType() ClassRef   { return primitiveClass(primShort) }
func IntType() ClassRef     { return primitiveClass(primInt) }
func LongType() ClassRef    { return primitiveClass(primLong) }
func FloatType() ClassRef   { return primitiveClass(primFloat) }
func DoubleType() ClassRef  { return primitiveClass(primDouble) }
