package golang_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/frontend/golang"
	"github.com/complyhq/comply/pkg/metrics"
)

const sampleSource = `package widgets

// Widget renders things.
type Widget struct {
	name string
}

// Render draws the widget.
func (w *Widget) Render(indent int) string {
	out := w.name
	for i := 0; i < indent; i++ {
		if i%2 == 0 {
			out += " "
		}
	}
	return out
}

func helper(a, b int, c string) int {
	return a + b + len(c)
}
`

func TestParseGoSymbols(t *testing.T) {
	unit := golang.New().Parse("widgets.go", []byte(sampleSource))
	require.Empty(t, unit.ParseError)
	require.Len(t, unit.Symbols, 3)
	assert.Equal(t, "go", unit.Language)

	widget := unit.Symbols[0]
	assert.Equal(t, core.KindClass, widget.Kind)
	assert.Equal(t, "Widget", widget.Name)
	assert.True(t, widget.HasDocstring, "doc comment counts as docstring")
	assert.Equal(t, core.NoParent, widget.Parent)

	render := unit.Symbols[1]
	assert.Equal(t, core.KindFunction, render.Kind)
	assert.Equal(t, "Render", render.Name)
	assert.True(t, render.HasDocstring)
	assert.Equal(t, 1, render.ParameterCount)
	assert.True(t, render.HasTypeAnnotations)
	assert.Equal(t, 0, render.Parent, "method links to its receiver type")
	assert.Equal(t, "Widget.Render", unit.QualifiedName(1))

	helper := unit.Symbols[2]
	assert.False(t, helper.HasDocstring)
	assert.Equal(t, 3, helper.ParameterCount, "grouped parameters expand")
	assert.Equal(t, core.NoParent, helper.Parent)
}

func TestParseGoNesting(t *testing.T) {
	unit := metrics.Annotate(golang.New().Parse("widgets.go", []byte(sampleSource)))
	assert.Equal(t, 2, unit.Symbols[1].MaxNestingDepth, "for > if")
	assert.Equal(t, 0, unit.Symbols[2].MaxNestingDepth)
}

func TestParseGoSyntaxErrorDegrades(t *testing.T) {
	src := strings.Join([]string{
		"package broken",
		"",
		"func ok() {}",
		"",
		"func bad( {",
	}, "\n")

	unit := golang.New().Parse("broken.go", []byte(src))
	assert.NotEmpty(t, unit.ParseError)
	// The parser recovers earlier declarations; they must be kept.
	require.NotEmpty(t, unit.Symbols)
	assert.Equal(t, "ok", unit.Symbols[0].Name)
}

func TestParseGoMethodBeforeType(t *testing.T) {
	src := strings.Join([]string{
		"package x",
		"",
		"func (s Store) Close() error { return nil }",
		"",
		"type Store struct{}",
	}, "\n")

	unit := golang.New().Parse("store.go", []byte(src))
	require.Empty(t, unit.ParseError)
	require.Len(t, unit.Symbols, 2)
	assert.Equal(t, "Close", unit.Symbols[0].Name)
	assert.Equal(t, 1, unit.Symbols[0].Parent, "weak link resolves forward")
}
