package sumgen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/sumgen/sumgen"
	"github.com/sumgen/sumgen/pkg/sumgenanalysis"
)

// TestAnalysis tests parsing and building errors using the Go analysis
// protocol. In this test, Sumgen errors will be reported as analysis errors.
// "// want `REGEXP`" comments in the fixture source files are used to check
// for expected analysis errors.
//
// The directory structure of testdata for subtests is as follows:
//
//	testdata/
//	└── analysis/
//	    ├── pkg1/
//	    │   └── *.go // with want comments
//	    └── pkg2/
//	        └── *.go // with want comments
func TestAnalysis(t *testing.T) {
	ents, err := os.ReadDir(filepath.FromSlash("testdata/analysis"))
	require.NoError(t, err)

	t.Setenv("GOFLAGS", "-tags=sumgen")

	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}

		t.Run(ent.Name(), func(t *testing.T) {
			t.Parallel()

			defer func() {
				if t.Failed() {
					t.Logf("\n\tReproduce:\tgo run ./cmd/sumgen ./testdata/analysis/%s", ent.Name())
				}
			}()

			analysistest.Run(t, "", sumgenanalysis.Analyzer, "./testdata/analysis/"+ent.Name())
		})
	}
}

// TestDirectivesPanic ensures the directive functions never run: they exist
// only to be parsed, and calling one means generation did not happen.
func TestDirectivesPanic(t *testing.T) {
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.ADT[any]()
	})
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.Flavour(sumgen.FlavourMo)
	})
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.Fields("Circle", "radius")
	})
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.Optics()
	})
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.Lazy()
	})
	assert.PanicsWithValue(t, "sumgen: not generated", func() {
		sumgen.Unexported()
	})
}
