package derive

import (
	"slices"

	"github.com/sumgen/sumgen/internal/codefmt"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Dispatch runs every eligible derivator of the registry against one model
// and merges their fragments into a single spec.
//
// A derivator is eligible when its supported flavours contain the context's
// flavour and its selector, if any, was explicitly requested. Every eligible
// derivator runs even when a sibling fails, so one pass surfaces every
// independent problem. The merged result fails on any diagnostic, including a
// name claimed by two derivators.
func Dispatch(adt *model.ADT, ctx *Context, utils *Utils, reg *Registry) Result[*CodeSpec] {
	merged := NewCodeSpec()
	claimed := make(map[string]string) // artifact name -> derivator name
	var errs []error

	for _, d := range reg.Derivators() {
		if sel := d.Selector(); sel != "" && !ctx.Requested(sel) {
			continue
		}

		if !slices.Contains(d.SupportedFlavours(), ctx.Flavour) {
			if d.Selector() != "" {
				// The directive explicitly asked for this derivator, so
				// skipping it silently would hide the mistake.
				err := utils.Errorf(ctx, "flavour %s does not support %s derivation",
					ctx.Flavour, d.Selector())
				errs = append(errs, err)
			}
			continue
		}

		res := d.Derive(adt, ctx, utils)
		spec, ok := res.Get()
		if !ok {
			errs = append(errs, res.Errs()...)
			continue
		}

		for _, a := range spec.Artifacts() {
			if prev, taken := claimed[a.Name]; taken {
				err := utils.Errorf(codefmt.Pos(a.Pos), "name collision: %q emitted by both %s and %s",
					a.Name, prev, d.Name())
				errs = append(errs, err)
				continue
			}
			claimed[a.Name] = d.Name()
			merged.Add(a)
		}
	}

	if len(errs) != 0 {
		return Fail[*CodeSpec](errs...)
	}
	return OK(merged)
}
