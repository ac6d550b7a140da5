package derive

import (
	"github.com/sumgen/sumgen/internal/sumgen/flavour"
	"github.com/sumgen/sumgen/internal/sumgen/model"
)

// Derivator is a pluggable strategy turning an extracted model into one
// category of generated artifacts. Derive must be a pure function of its
// three inputs: a derivator never depends on state left behind by a sibling
// in the same run.
type Derivator interface {
	// Name identifies the derivator in collision diagnostics.
	Name() string

	// SupportedFlavours returns the flavours under which the derivator can
	// run: the intersection of flavours resolving every capability it
	// needs.
	SupportedFlavours() []flavour.Flavour

	// Selector returns the opt-in tag, or "" when the derivator is always
	// eligible. A derivator with a selector runs only when the directive
	// explicitly requests that selector.
	Selector() string

	// Derive produces the derivator's code fragments for the model, or
	// diagnostics.
	Derive(adt *model.ADT, ctx *Context, utils *Utils) Result[*CodeSpec]
}

// Registry is an ordered list of derivators. Registration order is the
// execution order, which keeps generated output deterministic across runs.
type Registry struct {
	list []Derivator
}

// NewRegistry creates a registry with the given derivators pre-registered.
func NewRegistry(ds ...Derivator) *Registry {
	r := &Registry{}
	for _, d := range ds {
		r.Register(d)
	}
	return r
}

// Register appends a derivator. Third parties extend Sumgen by registering
// their own strategies here.
func (r *Registry) Register(d Derivator) {
	r.list = append(r.list, d)
}

// Derivators returns the registered derivators in registration order.
func (r *Registry) Derivators() []Derivator {
	return r.list
}

// Builtins returns a registry seeded with the built-in derivators in their
// canonical order.
func Builtins() *Registry {
	return NewRegistry(
		Constructors{},
		Matcher{},
		Accessors{},
		Lenses{},
		Prisms{},
		Structural{},
	)
}
