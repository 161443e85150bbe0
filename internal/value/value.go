// Package value holds the runtime values produced by evaluation.
package value

import (
    "math"
    "strconv"
)

// Value is the closed set of runtime values.
type Value interface{ repr() string }

type (
    Number     struct{ V float64 }
    Boolean    struct{ V bool }
    Null       struct{}
    String     struct{ V string }
    Identifier struct{ Name string } // reserved for name binding; never produced by evaluation today
)

func (v Number) repr() string {
    switch {
    case math.IsInf(v.V, 1): return "inf"
    case math.IsInf(v.V, -1): return "-inf"
    case math.IsNaN(v.V): return "NaN"
    }
    return strconv.FormatFloat(v.V, 'f', -1, 64)
}
func (v Boolean) repr() string    { if v.V { return "true" }; return "false" }
func (v Null) repr() string       { return "null" }
func (v String) repr() string     { return "\"" + v.V + "\"" }
func (v Identifier) repr() string { return v.Name }

// Format produces the display form of a value.
func Format(v Value) string {
    if v == nil { return "null" }
    return v.repr()
}

func TypeName(v Value) string {
    switch v.(type) {
    case Number: return "Number"
    case Boolean: return "Boolean"
    case Null: return "Null"
    case String: return "String"
    case Identifier: return "Identifier"
    default: return "Unknown"
    }
}
