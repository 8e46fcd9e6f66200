// Package value implements the runtime value representation for the
// Bananabread virtual machine.
package value

import (
	"fmt"
	"math"
)

// Kind identifies the type of datum stored in a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindI32
	KindFloat
	KindStr
	KindSymbol
)

// Value is a compact tagged union. Small primitives (nil, bool, i32,
// float) live entirely in the Data word; strings and symbols use the
// Text slot. Values are copyable and compared by content.
type Value struct {
	Kind Kind
	Data uint64 // int32 bits, float64 bits, or bool (0/1)
	Text string // payload for KindStr and KindSymbol
}

// Nil is the unit value.
var Nil = Value{Kind: KindNil}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// I32 creates an integer value.
func I32(n int32) Value {
	return Value{Kind: KindI32, Data: uint64(uint32(n))}
}

// Float creates a floating-point value.
func Float(f float64) Value {
	return Value{Kind: KindFloat, Data: math.Float64bits(f)}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	var data uint64
	if b {
		data = 1
	}
	return Value{Kind: KindBool, Data: data}
}

// Str creates a string value.
func Str(s string) Value {
	return Value{Kind: KindStr, Text: s}
}

// Symbol creates an interned-identifier value.
func Symbol(name string) Value {
	return Value{Kind: KindSymbol, Text: name}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// AsI32 returns the integer payload.
// Panics if v is not an i32.
func (v Value) AsI32() int32 {
	if v.Kind != KindI32 {
		panic("Value.AsI32: not an i32")
	}
	return int32(uint32(v.Data))
}

// AsFloat returns the float payload.
// Panics if v is not a float.
func (v Value) AsFloat() float64 {
	if v.Kind != KindFloat {
		panic("Value.AsFloat: not a float")
	}
	return math.Float64frombits(v.Data)
}

// AsBool returns the boolean payload.
// Panics if v is not a bool.
func (v Value) AsBool() bool {
	if v.Kind != KindBool {
		panic("Value.AsBool: not a bool")
	}
	return v.Data == 1
}

// AsStr returns the string payload.
// Panics if v is not a string.
func (v Value) AsStr() string {
	if v.Kind != KindStr {
		panic("Value.AsStr: not a string")
	}
	return v.Text
}

// AsSymbol returns the symbol name.
// Panics if v is not a symbol.
func (v Value) AsSymbol() string {
	if v.Kind != KindSymbol {
		panic("Value.AsSymbol: not a symbol")
	}
	return v.Text
}

// IsNil returns true if v is the unit value.
func (v Value) IsNil() bool {
	return v.Kind == KindNil
}

// ---------------------------------------------------------------------------
// Equality and formatting
// ---------------------------------------------------------------------------

// Equals compares two values by kind and content. Floats compare by
// bits, so NaN equals NaN and -0.0 differs from 0.0.
func (v Value) Equals(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNil:
		return true
	case KindStr, KindSymbol:
		return v.Text == other.Text
	default:
		return v.Data == other.Data
	}
}

// String renders the value the way the machine's tooling prints it.
func (v Value) String() string {
	switch v.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return fmt.Sprintf("%t", v.Data == 1)
	case KindI32:
		return fmt.Sprintf("%d", int32(uint32(v.Data)))
	case KindFloat:
		return fmt.Sprintf("%g", math.Float64frombits(v.Data))
	case KindStr:
		return fmt.Sprintf("%q", v.Text)
	case KindSymbol:
		return "#" + v.Text
	default:
		return "<?>"
	}
}
