package domain

import "fmt"

// OpKind identifies a toolbar operation.
type OpKind string

const (
	OpInsert    OpKind = "insert"
	OpFind      OpKind = "find"
	OpDelete    OpKind = "delete"
	OpPrint     OpKind = "print"
	OpSort      OpKind = "sort"
	OpDeleteMin OpKind = "deleteMin"

	// OpClear is reported by reset events. It is never submitted to a visualizer.
	OpClear OpKind = "clear"
)

// OpKinds lists every operation kind in toolbar order.
var OpKinds = []OpKind{OpInsert, OpFind, OpDelete, OpPrint, OpSort, OpDeleteMin}

// RequiresValue reports whether the operation reads a value from an input field.
func (k OpKind) RequiresValue() bool {
	switch k {
	case OpInsert, OpFind, OpDelete:
		return true
	}
	return false
}

// ParseOpKind converts a string into an OpKind.
func ParseOpKind(s string) (OpKind, error) {
	for _, k := range OpKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Operation is a single request forwarded to the active visualizer.
type Operation struct {
	Kind  OpKind `json:"kind"`
	Value string `json:"value,omitempty"`
}
