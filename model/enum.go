package model

import (
	"fmt"
	"strings"
)

// Sentinel values shared by the numbering of every enumeration. NotSet
// and IllegalValue apply to plain enumerations, None to flag sets.
const (
	NotSet       int64 = 0
	IllegalValue int64 = 1
	None         int64 = 0
)

// An Enum is a closed set of string values with stable numbering.
//
// A plain enumeration admits exactly one value at a time; its declared
// values are numbered 2, 3, 4, … in declaration order, after the NotSet
// and IllegalValue sentinels. A flag enumeration, produced from a
// whitespace-separated list type, admits any combination; its values are
// single bits 1, 2, 4, … and None is the empty set.
type Enum struct {
	Name string
	Doc  string

	// Flags marks the enumeration as a combinable flag set. Use
	// SetFlags to set it so existing values are renumbered.
	Flags bool

	Values []EnumValue
}

// An EnumValue is one declared value: its document token and its number.
type EnumValue struct {
	Name  string
	Doc   string
	Value int64
}

// Add appends a declared value, numbering it after the values already
// present.
func (e *Enum) Add(name, doc string) {
	v := EnumValue{Name: name, Doc: doc}
	if e.Flags {
		v.Value = 1 << len(e.Values)
	} else {
		v.Value = int64(len(e.Values)) + 2
	}
	e.Values = append(e.Values, v)
}

// SetFlags turns the enumeration into a flag set, renumbering declared
// values as single bits. SetFlags is idempotent, and a flag set never
// reverts to a plain enumeration.
func (e *Enum) SetFlags() {
	if e.Flags {
		return
	}
	e.Flags = true
	for i := range e.Values {
		e.Values[i].Value = 1 << i
	}
}

// Parse converts a document token to its number. Unknown tokens are an
// error, as is calling Parse on a flag set, which has no single-token
// form; use TryParse for flag sets.
func (e *Enum) Parse(s string) (int64, error) {
	if e.Flags {
		return None, fmt.Errorf("%s is a flag set, not parseable from a single token", e.Name)
	}
	for _, v := range e.Values {
		if v.Name == s {
			return v.Value, nil
		}
	}
	return IllegalValue, fmt.Errorf("%q is not a legal %s value", s, e.Name)
}

// TryParse converts a document token to its number, reporting success
// instead of failing.
//
// For a plain enumeration an exact match returns (value, true) and
// anything else returns (IllegalValue, false). For a flag set the token
// is split on whitespace, recognized fields are combined and unrecognized
// fields dropped; when no field is recognized the result is (None, false).
func (e *Enum) TryParse(s string) (int64, bool) {
	if !e.Flags {
		for _, v := range e.Values {
			if v.Name == s {
				return v.Value, true
			}
		}
		return IllegalValue, false
	}
	var set int64
	ok := false
	for _, field := range strings.Fields(s) {
		for _, v := range e.Values {
			if v.Name == field {
				set |= v.Value
				ok = true
				break
			}
		}
	}
	if !ok {
		return None, false
	}
	return set, ok
}

// Format converts a number back to its document form. Sentinels and
// unknown numbers format as the empty string; a flag set formats as its
// set bits' tokens in declaration order, joined by spaces.
func (e *Enum) Format(n int64) string {
	if e.Flags {
		var fields []string
		for _, v := range e.Values {
			if n&v.Value == v.Value {
				fields = append(fields, v.Name)
			}
		}
		return strings.Join(fields, " ")
	}
	for _, v := range e.Values {
		if v.Value == n {
			return v.Name
		}
	}
	return ""
}
