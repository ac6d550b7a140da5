package sumgeninternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/format"
	"go/printer"
	"go/token"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/derive"
	"github.com/sumgen/sumgen/internal/sumgen/parse"
)

// Sumgen generates sum-type code for the target package. Call [Sumgen.Build]
// and then [Sumgen.Generate] to get the generated code. All potential errors
// are returned by Build. Once Build succeeds, Generate never fails.
type Sumgen struct {
	p   *parse.Parser
	ns  codefmt.NS
	buf *bytes.Buffer
	w   *codefmt.Writer
	reg *derive.Registry

	decls []*parse.Decl
	specs map[token.Pos]*derive.CodeSpec
}

// New creates a new [Sumgen] for the given package. The package must have its
// Syntax, Types and TypesInfo. And it must not have any errors.
func New(pkg *packages.Package) (*Sumgen, error) {
	parser, err := parse.New(pkg)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	return &Sumgen{
		p:     parser,
		ns:    codefmt.NewNS(pkg.Types.Scope()),
		buf:   &buf,
		w:     codefmt.NewWriter(&buf, pkg),
		reg:   derive.Builtins(),
		specs: make(map[token.Pos]*derive.CodeSpec),
	}, nil
}

// Register adds a derivator beyond the built-ins. It must be called before
// [Sumgen.Build].
func (sg *Sumgen) Register(d derive.Derivator) {
	sg.reg.Register(d)
}

// Build parses the directives and derives code specs for every declared sum
// type. All potential errors are returned by this method: directive problems,
// sketch problems, and generated-name conflicts. Every declaration is
// processed even when a sibling fails, so one run reports every problem.
func (sg *Sumgen) Build() error {
	decls, errs := sg.p.ParseADTs()
	sg.decls = decls

	utils := derive.NewUtils(sg.p.Pkg())
	for _, decl := range decls {
		cfg := decl.Config
		ctx := derive.NewContext(cfg.Flavour, cfg.Exported, cfg.Lazy, cfg.Selectors, decl.Pos)

		res := derive.Dispatch(decl.ADT, ctx, utils, sg.reg)
		spec, ok := res.Get()
		if !ok {
			errs = errors.Join(errs, res.Err())
			continue
		}

		if err := sg.reserveNames(decl, spec); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		sg.specs[decl.Pos] = spec
	}

	return errs
}

// reserveNames claims the spec's top-level names in the package namespace.
// A name already taken, by the package or by an earlier declaration's spec,
// is a conflict the user must resolve.
func (sg *Sumgen) reserveNames(decl *parse.Decl, spec *derive.CodeSpec) error {
	var errs error
	for _, a := range spec.Artifacts() {
		if strings.Contains(a.Name, ".") {
			// Methods live in their receiver's namespace.
			continue
		}
		if !sg.ns.Reserve(a.Name) {
			err := codefmt.Errorf(sg.p, codefmt.Pos(a.Pos),
				"generated name %s conflicts with an existing declaration", a.Name)
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// Generate generates sum-type code for the package. It must be called after
// [Sumgen.Build] succeeds. It returns nil when the package declares no sum
// types.
func (sg *Sumgen) Generate() []byte {
	if len(sg.specs) == 0 {
		return nil
	}

	sg.writeSpecCode()
	sg.mergeCode()
	return sg.frameCode()
}

// writeSpecCode writes the derived declarations, grouped per sum type in
// declaration order.
func (sg *Sumgen) writeSpecCode() {
	for _, decl := range sg.decls {
		spec, ok := sg.specs[decl.Pos]
		if !ok {
			continue
		}

		sg.w.Printf("// sumgen: %s\n\n", decl.ADT.Name.Name())
		for _, a := range spec.Artifacts() {
			a.Write(sg.w)
		}
	}
}

// mergeCode copies non-sumgen code from the source files tagged with
// "//go:build sumgen". The sketch interfaces live in those files, so the
// generated file must carry them for the untagged build. It erases sumgen
// directives to remove any references to the sumgen package.
func (sg *Sumgen) mergeCode() {
	for _, file := range sg.p.SumgenGoFiles() {
		name := filepath.Base(sg.p.Pkg().Fset.File(file.Pos()).Name())
		first := true

		for _, decl := range file.Decls {
			if gen, ok := decl.(*ast.GenDecl); ok {
				if gen.Tok == token.IMPORT {
					// Skip import declarations in files. Required imports will
					// be collected from their usage, and then rewritten as an
					// import declaration group.
					continue
				}
			}

			if first {
				fmt.Fprintf(sg.buf, "// %s:\n\n", name)
				first = false
			}

			// Erase var _ = sumgen.ADT[T](...)
			decl = astutil.Apply(decl, func(c *astutil.Cursor) bool {
				spec, ok := c.Node().(*ast.ValueSpec)
				if !ok {
					return true
				}

				// Find non-sumgen values
				var names []*ast.Ident
				var values []ast.Expr
				for i := range spec.Names {
					if i >= len(spec.Values) {
						names = append(names, spec.Names[i])
						continue
					}

					call, ok := ast.Unparen(spec.Values[i]).(*ast.CallExpr)
					if ok && sg.p.IsDirective(call, "ADT") {
						continue
					}
					names = append(names, spec.Names[i])
					values = append(values, spec.Values[i])
				}

				if len(names) == 0 {
					// Input:  var ( _ = sumgen.ADT[Shape]() )
					// Output: var ()
					c.Delete()
				} else if len(names) < len(spec.Names) {
					c.Replace(&ast.ValueSpec{
						Doc:     spec.Doc,
						Names:   names,
						Type:    spec.Type,
						Values:  values,
						Comment: spec.Comment,
					})
				}

				return false
			}, nil).(ast.Decl)

			// Skip empty declarations
			if gen, ok := decl.(*ast.GenDecl); ok {
				if len(gen.Specs) == 0 {
					continue
				}
			}

			// Prevent import name conflicts when merging multiple files into one
			decl = codefmt.RewriteImports(sg.w, decl)

			// Write rewritten declaration code
			printer.Fprint(sg.buf, sg.p.Pkg().Fset, &printer.CommentedNode{
				Node:     decl,
				Comments: file.Comments,
			})
			fmt.Fprintf(sg.buf, "\n\n")
		}
	}
}

func (sg *Sumgen) frameCode() []byte {
	// Prepend header code
	versionSuffix := ""
	if Version != "" {
		versionSuffix = "@" + Version
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "//go:build !sumgen\n")
	fmt.Fprintf(&buf, "// Code generated by github.com/sumgen/sumgen%s. DO NOT EDIT.\n", versionSuffix)
	fmt.Fprintf(&buf, "package %s\n", sg.p.Pkg().Name)

	if imports := sg.w.Imports(); len(imports) != 0 {
		// Sorted aliases keep the output reproducible.
		aliases := slices.Sorted(maps.Keys(imports))

		fmt.Fprintf(&buf, "import (\n")
		for _, alias := range aliases {
			imp := imports[alias]
			if imp.HasAlias {
				fmt.Fprintf(&buf, "%s %q\n", alias, imp.Path())
			} else {
				fmt.Fprintf(&buf, "%q\n", imp.Path())
			}
		}
		fmt.Fprintf(&buf, ")\n")
	}

	_, _ = io.Copy(&buf, sg.buf)
	code := buf.Bytes()

	// Apply gofmt if succeeded
	if fmtCode, err := format.Source(code); err == nil {
		code = fmtCode
	}
	return code
}
