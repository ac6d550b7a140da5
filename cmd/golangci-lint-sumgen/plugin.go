// golangcilintsumgen package provides a plugin for golangci-lint to integrate
// the Sumgen analyzer. To build a custom golangci-lint binary with this
// plugin, use the following command at this package's directory:
//
//	golangci-lint custom
//
// Now you will have a golangci-lint-sumgen binary that you can use to lint
// your Go code with the Sumgen analyzer.
package golangcilintsumgen

import (
	"github.com/golangci/plugin-module-register/register"
	"golang.org/x/tools/go/analysis"

	"github.com/sumgen/sumgen/pkg/sumgenanalysis"
)

func init() {
	register.Plugin("sumgen", New)
}

func New(settings any) (register.LinterPlugin, error) {
	return SumgenLinter{}, nil
}

type SumgenLinter struct{}

func (SumgenLinter) BuildAnalyzers() ([]*analysis.Analyzer, error) {
	return []*analysis.Analyzer{sumgenanalysis.Analyzer}, nil
}

func (SumgenLinter) GetLoadMode() string {
	return register.LoadModeSyntax
}
