// Package eval reduces syntax trees to values.
package eval

import "strconv"

// ValueKind identifies the runtime type of a Value.
type ValueKind uint8

const (
	// VKInvalid represents an invalid value.
	VKInvalid ValueKind = iota
	// VKI32 represents a signed 32-bit integer.
	VKI32
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VKI32:
		return "I32"
	default:
		return "invalid"
	}
}

// Value is the result of evaluating one tree.
type Value struct {
	Kind ValueKind
	I32  int32
}

// MakeI32 wraps n into a Value.
func MakeI32(n int32) Value {
	return Value{Kind: VKI32, I32: n}
}

// String renders the value in debug form, e.g. I32(83).
func (v Value) String() string {
	switch v.Kind {
	case VKI32:
		return "I32(" + strconv.FormatInt(int64(v.I32), 10) + ")"
	default:
		return "Invalid"
	}
}
