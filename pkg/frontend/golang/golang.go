// Package golang implements a front end for Go sources on top of the
// standard go/ast parser. Functions and methods map to function symbols,
// type declarations to class symbols; doc comments count as docstrings.
package golang

import (
	"go/ast"
	goparser "go/parser"
	"go/token"

	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/frontend"
)

// Parser is the Go front end. Stateless and safe for concurrent use.
type Parser struct{}

// New returns the Go front end.
func New() *Parser { return &Parser{} }

// Language returns the language tag.
func (*Parser) Language() string { return "go" }

// Extensions returns the handled file extensions.
func (*Parser) Extensions() []string { return []string{".go"} }

// Parse builds the normalized model of one Go file. Syntax errors degrade
// the unit; whatever declarations the parser recovered are kept.
func (p *Parser) Parse(path string, content []byte) *core.SourceUnit {
	lines := frontend.SplitLines(content)
	unit := &core.SourceUnit{
		Path:       path,
		Language:   p.Language(),
		Lines:      lines,
		LineCount:  len(lines),
		BlockDepth: make([]int, len(lines)),
	}

	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, content, goparser.ParseComments)
	if err != nil {
		unit.ParseError = err.Error()
	}
	if file == nil {
		return unit
	}

	methodOwners := make([]string, 0) // receiver base type per symbol, "" for none
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				unit.Symbols = append(unit.Symbols, core.Symbol{
					Kind:               core.KindClass,
					Name:               ts.Name.Name,
					StartLine:          fset.Position(ts.Pos()).Line,
					EndLine:            fset.Position(ts.End()).Line,
					Parent:             core.NoParent,
					HasDocstring:       ts.Doc != nil || d.Doc != nil,
					HasTypeAnnotations: true,
				})
				methodOwners = append(methodOwners, "")
			}
		case *ast.FuncDecl:
			unit.Symbols = append(unit.Symbols, core.Symbol{
				Kind:               core.KindFunction,
				Name:               d.Name.Name,
				StartLine:          fset.Position(d.Pos()).Line,
				EndLine:            fset.Position(d.End()).Line,
				Parent:             core.NoParent,
				HasDocstring:       d.Doc != nil,
				ParameterCount:     fieldCount(d.Type.Params),
				HasTypeAnnotations: true, // Go signatures are always typed
			})
			methodOwners = append(methodOwners, receiverType(d))
		}
	}

	// Methods link to their receiver's type symbol through a weak index,
	// resolved after the full document-order pass since the type may be
	// declared below the method.
	typeIndex := make(map[string]int)
	for i, sym := range unit.Symbols {
		if sym.Kind == core.KindClass {
			typeIndex[sym.Name] = i
		}
	}
	for i, owner := range methodOwners {
		if owner == "" {
			continue
		}
		if idx, ok := typeIndex[owner]; ok {
			unit.Symbols[i].Parent = idx
		}
	}

	markBlockDepths(fset, file, unit.BlockDepth)
	return unit
}

// fieldCount counts parameters, expanding grouped names ("a, b int" is two).
func fieldCount(fields *ast.FieldList) int {
	if fields == nil {
		return 0
	}
	count := 0
	for _, f := range fields.List {
		if len(f.Names) == 0 {
			count++
			continue
		}
		count += len(f.Names)
	}
	return count
}

// receiverType returns the base type name of a method receiver, or "".
func receiverType(d *ast.FuncDecl) string {
	if d.Recv == nil || len(d.Recv.List) == 0 {
		return ""
	}
	expr := d.Recv.List[0].Type
	for {
		switch t := expr.(type) {
		case *ast.StarExpr:
			expr = t.X
		case *ast.IndexExpr:
			expr = t.X
		case *ast.IndexListExpr:
			expr = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// markBlockDepths increments the per-line depth profile for the interior of
// every control-flow block. Single-line bodies introduce no nesting level,
// mirroring how inline suites are treated by the other front ends.
func markBlockDepths(fset *token.FileSet, file *ast.File, depths []int) {
	mark := func(body *ast.BlockStmt) {
		if body == nil {
			return
		}
		start := fset.Position(body.Lbrace).Line + 1
		end := fset.Position(body.Rbrace).Line - 1
		for l := start; l <= end && l <= len(depths); l++ {
			if l >= 1 {
				depths[l-1]++
			}
		}
	}
	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.IfStmt:
			mark(n.Body)
			if elseBlock, ok := n.Else.(*ast.BlockStmt); ok {
				mark(elseBlock)
			}
		case *ast.ForStmt:
			mark(n.Body)
		case *ast.RangeStmt:
			mark(n.Body)
		case *ast.SwitchStmt:
			mark(n.Body)
		case *ast.TypeSwitchStmt:
			mark(n.Body)
		case *ast.SelectStmt:
			mark(n.Body)
		}
		return true
	})
}
