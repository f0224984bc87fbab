package na

import (
	"math"
	"reflect"
)

// Logical is a three-valued boolean: False, True or LogicalNA.
type Logical int8

const (
	False     Logical = 0
	True      Logical = 1
	LogicalNA Logical = math.MinInt8
)

var logicalType = reflect.TypeOf(Logical(0))

// FromBool converts a bool to a Logical.
func FromBool(b bool) Logical {
	if b {
		return True
	}
	return False
}

// IsNA reports whether l is LogicalNA.
func (l Logical) IsNA() bool { return l == LogicalNA }

// Bool returns the bool value and false when l is NA.
func (l Logical) Bool() (bool, bool) {
	if l == LogicalNA {
		return false, false
	}
	return l != False, true
}

// Not negates l; NA stays NA.
func (l Logical) Not() Logical {
	switch l {
	case LogicalNA:
		return LogicalNA
	case False:
		return True
	}
	return False
}

// And is Kleene conjunction: False dominates NA.
func (l Logical) And(o Logical) Logical {
	if l == False || o == False {
		return False
	}
	if l == LogicalNA || o == LogicalNA {
		return LogicalNA
	}
	return True
}

// Or is Kleene disjunction: True dominates NA.
func (l Logical) Or(o Logical) Logical {
	if l == True || o == True {
		return True
	}
	if l == LogicalNA || o == LogicalNA {
		return LogicalNA
	}
	return False
}

func (l Logical) String() string {
	switch l {
	case LogicalNA:
		return "NA"
	case False:
		return "false"
	}
	return "true"
}
