// Package query defines a small filter IR over the run-history table and
// its compilation to parameterized SQL.
//
// The IR exists so the CLI and harness never concatenate SQL by hand: a
// filter is built from typed expressions against a whitelisted field set
// and compiled to a WHERE fragment with bound arguments.
//
// Expr is a sealed interface using the marker method pattern: only types in
// this package implement it, so the compiler's type switch is exhaustive by
// construction.
package query

import (
	"fmt"
	"strings"
)

// Expr is a sealed filter expression over run fields.
type Expr interface {
	expr() // sealed - only types in this package implement it
}

// Eq matches runs whose field equals the value exactly.
type Eq struct {
	Field string
	Value any
}

func (Eq) expr() {}

// Ge matches runs whose field is greater than or equal to the value.
type Ge struct {
	Field string
	Value any
}

func (Ge) expr() {}

// Le matches runs whose field is less than or equal to the value.
type Le struct {
	Field string
	Value any
}

func (Le) expr() {}

// And matches runs satisfying every sub-expression. Empty And is a compile
// error rather than an implicit match-all; use a nil Expr for "no filter".
type And []Expr

func (And) expr() {}

// Fields lists the run columns a filter may reference. Anything else is a
// compile error, which keeps the filter surface decoupled from the full
// table schema.
var Fields = map[string]bool{
	"spec_hash":  true,
	"status":     true,
	"cost":       true,
	"expanded":   true,
	"plan_hash":  true,
	"created_at": true,
}

// Compile lowers a filter expression to a SQL WHERE fragment (without the
// WHERE keyword) plus bound arguments. A nil expression compiles to an
// empty fragment, meaning no filtering.
func Compile(e Expr) (string, []any, error) {
	if e == nil {
		return "", nil, nil
	}
	return compile(e)
}

func compile(e Expr) (string, []any, error) {
	switch ex := e.(type) {
	case Eq:
		return compileComparison(ex.Field, "=", ex.Value)
	case Ge:
		return compileComparison(ex.Field, ">=", ex.Value)
	case Le:
		return compileComparison(ex.Field, "<=", ex.Value)
	case And:
		if len(ex) == 0 {
			return "", nil, fmt.Errorf("query: empty conjunction")
		}
		frags := make([]string, 0, len(ex))
		var args []any
		for _, sub := range ex {
			frag, a, err := compile(sub)
			if err != nil {
				return "", nil, err
			}
			frags = append(frags, frag)
			args = append(args, a...)
		}
		return "(" + strings.Join(frags, " AND ") + ")", args, nil
	default:
		return "", nil, fmt.Errorf("query: unsupported expression type %T", e)
	}
}

func compileComparison(field, op string, value any) (string, []any, error) {
	if !Fields[field] {
		return "", nil, fmt.Errorf("query: unknown field %q", field)
	}
	return field + " " + op + " ?", []any{value}, nil
}
