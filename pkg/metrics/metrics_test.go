package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/metrics"
)

func TestAnnotateBodyLineCount(t *testing.T) {
	unit := &core.SourceUnit{
		Path:     "sample.py",
		Language: "python",
		Lines: []string{
			"def handler(event):", // 1
			"    # dispatch",      // 2
			"",                    // 3
			"    run(event)",      // 4
			"    return True",     // 5
		},
		LineCount:  5,
		BlockDepth: []int{0, 0, 0, 0, 0},
		Symbols: []core.Symbol{{
			Kind: core.KindFunction, Name: "handler", StartLine: 1, EndLine: 5, Parent: core.NoParent,
		}},
	}

	metrics.Annotate(unit)
	assert.Equal(t, 3, unit.Symbols[0].BodyLineCount, "blank and comment-only lines excluded")
	assert.Equal(t, 0, unit.Symbols[0].MaxNestingDepth)
}

func TestAnnotateCommentMarkerPerLanguage(t *testing.T) {
	lines := []string{
		"func run() {",
		"\t// comment",
		"\t# not a go comment",
		"}",
	}
	unit := &core.SourceUnit{
		Path: "main.go", Language: "go",
		Lines: lines, LineCount: 4, BlockDepth: make([]int, 4),
		Symbols: []core.Symbol{{Kind: core.KindFunction, Name: "run", StartLine: 1, EndLine: 4, Parent: core.NoParent}},
	}
	metrics.Annotate(unit)
	assert.Equal(t, 3, unit.Symbols[0].BodyLineCount)
}

func TestAnnotateNestingDepthRelativeToDeclaration(t *testing.T) {
	// A method declared inside a control block: depth is measured from
	// the declaration line, not from the file root.
	unit := &core.SourceUnit{
		Path: "sample.py", Language: "python",
		Lines:      []string{"a", "b", "c", "d", "e", "f"},
		LineCount:  6,
		BlockDepth: []int{0, 1, 1, 2, 3, 1},
		Symbols: []core.Symbol{{
			Kind: core.KindFunction, Name: "inner", StartLine: 2, EndLine: 6, Parent: core.NoParent,
		}},
	}
	metrics.Annotate(unit)
	assert.Equal(t, 2, unit.Symbols[0].MaxNestingDepth)
	assert.Equal(t, 2, unit.Symbols[0].BranchCount, "one block entered per positive depth delta")
}

func TestAnnotateDegradedUnit(t *testing.T) {
	unit := &core.SourceUnit{
		Path: "broken.py", Language: "python",
		Lines:      []string{"def f(:"},
		LineCount:  1,
		ParseError: "line 1: unterminated declaration header",
		Symbols: []core.Symbol{{
			// Recovered partial symbol with a span past the content.
			Kind: core.KindFunction, Name: "f", StartLine: 1, EndLine: 9, Parent: core.NoParent,
		}},
	}

	require.NotPanics(t, func() { metrics.Annotate(unit) })
	assert.Equal(t, "line 1: unterminated declaration header", unit.ParseError, "parse error propagates unchanged")
	assert.Equal(t, 1, unit.Symbols[0].BodyLineCount)
	assert.Equal(t, 0, unit.Symbols[0].MaxNestingDepth, "missing depth profile yields zero")
}

func TestAnnotateIsDeterministic(t *testing.T) {
	build := func() *core.SourceUnit {
		return &core.SourceUnit{
			Path: "sample.py", Language: "python",
			Lines:      []string{"def f():", "    if x:", "        y()"},
			LineCount:  3,
			BlockDepth: []int{0, 0, 1},
			Symbols:    []core.Symbol{{Kind: core.KindFunction, Name: "f", StartLine: 1, EndLine: 3, Parent: core.NoParent}},
		}
	}
	a, b := metrics.Annotate(build()), metrics.Annotate(build())
	assert.Equal(t, a.Symbols, b.Symbols)
}

func TestAnnotateNil(t *testing.T) {
	assert.Nil(t, metrics.Annotate(nil))
}
