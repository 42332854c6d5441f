package python_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/frontend/python"
	"github.com/complyhq/comply/pkg/metrics"
)

const sampleSource = `"""Module docstring."""

import os


def documented(a: int, b: str = "x") -> bool:
    """Docs."""
    if a:
        for i in range(a):
            print(i)
    return True


class Widget:
    """A widget."""

    def render(self, items=[]):
        try:
            return items
        except:
            pass


def bare(x):
    return x
`

func parseSample(t *testing.T) *core.SourceUnit {
	t.Helper()
	unit := python.New().Parse("sample.py", []byte(sampleSource))
	require.NotNil(t, unit)
	require.Empty(t, unit.ParseError)
	return unit
}

func findSymbol(t *testing.T, unit *core.SourceUnit, name string) *core.Symbol {
	t.Helper()
	for i := range unit.Symbols {
		if unit.Symbols[i].Name == name {
			return &unit.Symbols[i]
		}
	}
	t.Fatalf("symbol %q not found", name)
	return nil
}

func TestParseSymbolsInDocumentOrder(t *testing.T) {
	unit := parseSample(t)
	require.Len(t, unit.Symbols, 4)

	names := make([]string, len(unit.Symbols))
	for i, s := range unit.Symbols {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"documented", "Widget", "render", "bare"}, names)
	assert.Equal(t, "python", unit.Language)
	assert.Equal(t, 25, unit.LineCount)
}

func TestParseFunctionFacts(t *testing.T) {
	unit := parseSample(t)

	documented := findSymbol(t, unit, "documented")
	assert.Equal(t, core.KindFunction, documented.Kind)
	assert.Equal(t, 6, documented.StartLine)
	assert.Equal(t, 11, documented.EndLine)
	assert.True(t, documented.HasDocstring)
	assert.True(t, documented.HasTypeAnnotations)
	assert.Equal(t, 2, documented.ParameterCount)
	assert.Empty(t, documented.DefaultArgKinds, "string default is not mutable")
	assert.Equal(t, core.NoParent, documented.Parent)

	bare := findSymbol(t, unit, "bare")
	assert.False(t, bare.HasDocstring)
	assert.False(t, bare.HasTypeAnnotations)
	assert.Equal(t, 1, bare.ParameterCount)
}

func TestParseClassAndMethod(t *testing.T) {
	unit := parseSample(t)

	widget := findSymbol(t, unit, "Widget")
	assert.Equal(t, core.KindClass, widget.Kind)
	assert.True(t, widget.HasDocstring)
	assert.Equal(t, core.NoParent, widget.Parent)

	render := findSymbol(t, unit, "render")
	assert.Equal(t, core.KindFunction, render.Kind)
	assert.False(t, render.HasDocstring)
	assert.Equal(t, 1, render.ParameterCount, "self is not counted")
	assert.False(t, render.HasTypeAnnotations)
	assert.Equal(t, []string{core.DefaultKindMutableLiteral}, render.DefaultArgKinds)
	assert.Equal(t, []int{20}, render.BareHandlerLines)
	assert.Equal(t, "Widget.render", unit.QualifiedName(2))
}

func TestParseNestingProfile(t *testing.T) {
	unit := metrics.Annotate(parseSample(t))

	documented := findSymbol(t, unit, "documented")
	assert.Equal(t, 2, documented.MaxNestingDepth, "if > for")

	render := findSymbol(t, unit, "render")
	assert.Equal(t, 1, render.MaxNestingDepth, "try/except bodies")
}

func TestParseMultiLineHeader(t *testing.T) {
	src := strings.Join([]string{
		"def spread(",
		"    first: int,",
		"    second: dict = {},",
		") -> None:",
		"    pass",
	}, "\n")

	unit := python.New().Parse("spread.py", []byte(src))
	require.Empty(t, unit.ParseError)
	require.Len(t, unit.Symbols, 1)

	sym := unit.Symbols[0]
	assert.Equal(t, "spread", sym.Name)
	assert.Equal(t, 1, sym.StartLine)
	assert.Equal(t, 2, sym.ParameterCount)
	assert.True(t, sym.HasTypeAnnotations)
	assert.Equal(t, []string{core.DefaultKindMutableLiteral}, sym.DefaultArgKinds)
}

func TestParseUnterminatedHeaderDegrades(t *testing.T) {
	src := "def broken(a,\n"

	unit := python.New().Parse("broken.py", []byte(src))
	require.NotEmpty(t, unit.ParseError)
	assert.Contains(t, unit.ParseError, "unterminated")
	require.Len(t, unit.Symbols, 1, "partial symbol is kept, not dropped")
	assert.Equal(t, "broken", unit.Symbols[0].Name)
}

func TestParseIsIdempotent(t *testing.T) {
	p := python.New()
	first := p.Parse("sample.py", []byte(sampleSource))
	second := p.Parse("sample.py", []byte(sampleSource))
	assert.Equal(t, first, second)
}

func TestParseEmptyFile(t *testing.T) {
	unit := python.New().Parse("empty.py", nil)
	assert.Empty(t, unit.Symbols)
	assert.Empty(t, unit.ParseError)
	assert.Equal(t, 0, unit.LineCount)
}

func TestParseOneLinerSuitesOpenNoBlock(t *testing.T) {
	src := strings.Join([]string{
		"def quick(x):",
		"    if x: return x",
		"    return None",
	}, "\n")

	unit := metrics.Annotate(python.New().Parse("quick.py", []byte(src)))
	require.Len(t, unit.Symbols, 1)
	assert.Equal(t, 0, unit.Symbols[0].MaxNestingDepth)
}
