package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileNil(t *testing.T) {
	frag, args, err := Compile(nil)
	require.NoError(t, err)
	assert.Empty(t, frag)
	assert.Empty(t, args)
}

func TestCompileEq(t *testing.T) {
	frag, args, err := Compile(Eq{Field: "status", Value: "found"})
	require.NoError(t, err)
	assert.Equal(t, "status = ?", frag)
	assert.Equal(t, []any{"found"}, args)
}

func TestCompileRange(t *testing.T) {
	frag, args, err := Compile(And{
		Ge{Field: "cost", Value: int64(5)},
		Le{Field: "cost", Value: int64(100)},
	})
	require.NoError(t, err)
	assert.Equal(t, "(cost >= ? AND cost <= ?)", frag)
	assert.Equal(t, []any{int64(5), int64(100)}, args)
}

func TestCompileNested(t *testing.T) {
	frag, args, err := Compile(And{
		Eq{Field: "spec_hash", Value: "abc"},
		And{
			Eq{Field: "status", Value: "found"},
			Le{Field: "expanded", Value: int64(1000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "(spec_hash = ? AND (status = ? AND expanded <= ?))", frag)
	assert.Len(t, args, 3)
}

func TestCompileUnknownField(t *testing.T) {
	_, _, err := Compile(Eq{Field: "password", Value: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "password"`)
}

func TestCompileEmptyAnd(t *testing.T) {
	_, _, err := Compile(And{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty conjunction")
}

func TestCompileErrorPropagates(t *testing.T) {
	_, _, err := Compile(And{
		Eq{Field: "status", Value: "found"},
		Ge{Field: "nope", Value: 1},
	})
	require.Error(t, err)
}
