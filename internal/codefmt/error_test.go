package codefmt_test

import (
	"errors"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumgen/sumgen/internal/codefmt"
)

func TestErrorfNoPos(t *testing.T) {
	f := codefmt.Formatter{Fset: token.NewFileSet()}
	err := f.Errorf(nil, "no matcher found")
	assert.Equal(t, "no matcher found", err.Error())
}

func TestErrorfWithPos(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sketch.go", "package p\n\ntype S interface{}\n", 0)
	require.NoError(t, err)

	f := codefmt.Formatter{Fset: fset}
	codeErr := f.Errorf(codefmt.Pos(file.Decls[0].Pos()), "bad sketch")
	assert.Contains(t, codeErr.Error(), "sketch.go:3:1: bad sketch")
}

func TestErrorfUnwrap(t *testing.T) {
	f := codefmt.Formatter{Fset: token.NewFileSet()}
	err := f.Errorf(nil, "outer")

	var codeErr *codefmt.CodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, "outer", codeErr.Unwrap().Error())
}

func TestErrorfRejectsWrappedError(t *testing.T) {
	f := codefmt.Formatter{Fset: token.NewFileSet()}
	assert.Panics(t, func() {
		_ = f.Errorf(nil, "%s", errors.New("inner"))
	})
}
