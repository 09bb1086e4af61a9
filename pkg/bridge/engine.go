// Package bridge converts values between the host's luna.Value model and
// an embedded Lua engine's stack, and invokes named engine globals with
// host-native arguments.
//
// The engine itself is an external collaborator. It is reached through
// the State interface, a minimal rendering of the classic stack-oriented
// Lua C API: typed reads and pushes at stack positions, table creation
// and assignment, cursor-style table iteration, global lookup, and a
// protected call. Any engine exposing these primitives can sit behind the
// bridge; see the gopherlua subpackage for a real one and the package
// tests for a host-side fake.
//
// The state handle is threaded explicitly through every operation. The
// bridge holds no global state and performs no locking; a State must be
// confined to one goroutine at a time, matching the engine's own
// single-threaded model.
package bridge

// Type is the engine's runtime type tag for a stack slot.
type Type int

const (
	TypeNil Type = iota
	TypeBoolean
	TypeNumber
	TypeString
	TypeTable
	TypeFunction
	TypeUserdata
	TypeThread
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeTable:
		return "table"
	case TypeFunction:
		return "function"
	case TypeUserdata:
		return "userdata"
	case TypeThread:
		return "thread"
	default:
		return "unknown"
	}
}

// State is the engine's stack protocol. Indices follow the Lua
// convention: positive from the bottom, negative from the top.
type State interface {
	// GetTop returns the index of the top stack slot.
	GetTop() int
	// SetTop truncates or extends the stack to idx.
	SetTop(idx int)
	// Pop removes n slots from the top.
	Pop(n int)

	// TypeOf returns the runtime tag of the slot at idx.
	TypeOf(idx int) Type
	// ToBoolean reads the boolean at idx.
	ToBoolean(idx int) bool
	// ToNumber reads the number at idx.
	ToNumber(idx int) float64
	// ToString reads the string at idx.
	ToString(idx int) string

	// PushNil, PushBoolean, PushNumber and PushString each grow the
	// stack by one slot.
	PushNil()
	PushBoolean(b bool)
	PushNumber(n float64)
	PushString(s string)

	// NewTable pushes a fresh empty table.
	NewTable()
	// SetTable assigns into the table at idx, consuming the key and
	// value on top of the stack.
	SetTable(idx int)
	// Next advances iteration over the table at idx. It consumes the
	// previous key from the top of the stack and either pushes the next
	// key and value and reports true, or pushes nothing and reports
	// false when the table is exhausted.
	Next(idx int) bool

	// GetGlobal pushes the named global binding.
	GetGlobal(name string)
	// PCall invokes the callable pushed below its nargs arguments,
	// expecting nresults return slots. It reports an error if the
	// callable raised or was not callable.
	PCall(nargs, nresults int) error
}
