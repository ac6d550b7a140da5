package parse

import (
	"errors"
	"go/ast"
	"go/constant"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
)

// Config holds every option parsed from one ADT directive.
type Config struct {
	// Flavour is the representation family for optionals.
	Flavour flavour.Flavour

	// Exported decides the visibility of generated top-level names.
	Exported bool

	// Lazy requests the memoized lazy factory.
	Lazy bool

	// Selectors are the opt-in derivator tags requested on the directive, in
	// declaration order.
	Selectors []string

	// FieldNames maps a constructor name, normalized by [normalizeCtor], to
	// the field names given by a Fields option.
	FieldNames map[string][]string

	// FieldPoss anchors diagnostics about a Fields option.
	FieldPoss map[string]ast.Expr
}

// DefaultConfig returns the directive defaults: plain flavour, exported
// names, no lazy factory, no selectors.
func DefaultConfig() Config {
	return Config{
		Flavour:    flavour.Plain,
		Exported:   true,
		FieldNames: make(map[string][]string),
		FieldPoss:  make(map[string]ast.Expr),
	}
}

// ParseConfig parses the option arguments of an ADT directive into cfg.
func (p *Parser) ParseConfig(cfg *Config, args []ast.Expr) error {
	var errs error
	for _, arg := range args {
		if _, ok := arg.(*ast.Ident); ok {
			err := codefmt.Errorf(p, arg, "option must be inlined, not assigned to variable")
			errs = errors.Join(errs, err)
			continue
		}

		call, ok := ast.Unparen(arg).(*ast.CallExpr)
		if !ok {
			// Probably, this case is unreachable because every option type is
			// unexported. The only way to create a valid option is to call an
			// option directive function, or assign it to a variable. The
			// latter one is caught above.
			err := codefmt.Errorf(p, arg, "cannot use %c as option", arg)
			errs = errors.Join(errs, err)
			continue
		}

		if err := p.ParseOption(cfg, call); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

func (p *Parser) ParseOption(cfg *Config, call *ast.CallExpr) error {
	callee := typeutil.Callee(p.Pkg().TypesInfo, call)
	if callee == nil || callee.Pkg() == nil || !IsSumgenImport(callee.Pkg().Path()) {
		return codefmt.Errorf(p, call, "option must be sumgen directive")
	}

	name := callee.Name()
	switch name {
	case "Flavour":
		return p.ParseOptionFlavour(cfg, call)
	case "Fields":
		return p.ParseOptionFields(cfg, call)
	case "Optics":
		cfg.Selectors = append(cfg.Selectors, "optics")
		return nil
	case "Lazy":
		cfg.Lazy = true
		return nil
	case "Unexported":
		cfg.Exported = false
		return nil
	}

	return codefmt.Errorf(p, call.Fun, "%s is not supported option", name)
}

// ParseOptionFlavour parses sumgen.Flavour(sumgen.FlavourMo).
func (p *Parser) ParseOptionFlavour(cfg *Config, call *ast.CallExpr) error {
	expr, err := needArgs1(p, call)
	if err != nil {
		return err
	}

	tv := p.Pkg().TypesInfo.Types[expr]
	if tv.Value == nil || tv.Value.Kind() != constant.Int {
		return codefmt.Errorf(p, expr, "flavour must be a sumgen.Flavour* constant")
	}

	id, _ := constant.Int64Val(tv.Value)
	switch id {
	case 0:
		cfg.Flavour = flavour.Plain
	case 1:
		cfg.Flavour = flavour.Mo
	default:
		return codefmt.Errorf(p, expr, "unknown flavour %s", tv.Value.String())
	}
	return nil
}

// ParseOptionFields parses sumgen.Fields("Ctor", "f1", "f2", ...).
func (p *Parser) ParseOptionFields(cfg *Config, call *ast.CallExpr) error {
	if len(call.Args) < 2 {
		return codefmt.Errorf(p, call, "need a constructor name and at least 1 field name")
	}

	ctor, ok := evalStringLit(call.Args[0])
	if !ok {
		return codefmt.Errorf(p, call.Args[0], "%c is not string literal", call.Args[0])
	}

	var errs error
	var names []string
	for _, arg := range call.Args[1:] {
		name, ok := evalStringLit(arg)
		if !ok {
			err := codefmt.Errorf(p, arg, "%c is not string literal", arg)
			errs = errors.Join(errs, err)
			continue
		}
		names = append(names, name)
	}
	if errs != nil {
		return errs
	}

	key := normalizeCtor(ctor)
	if _, ok := cfg.FieldNames[key]; ok {
		return codefmt.Errorf(p, call, "duplicate Fields for constructor %q", ctor)
	}
	cfg.FieldNames[key] = names
	cfg.FieldPoss[key] = call
	return nil
}
