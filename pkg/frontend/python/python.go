// Package python implements an indentation-based front end for Python
// sources. It extracts def/class declarations, docstring presence, parameter
// facts and a per-line control-flow depth profile without a full grammar;
// the goal is a robust structural model, not interpretation.
package python

import (
	"fmt"
	"strings"

	"github.com/complyhq/comply/pkg/core"
	"github.com/complyhq/comply/pkg/frontend"
)

// Parser is the Python front end. Stateless and safe for concurrent use.
type Parser struct{}

// New returns the Python front end.
func New() *Parser { return &Parser{} }

// Language returns the language tag.
func (*Parser) Language() string { return "python" }

// Extensions returns the handled file extensions.
func (*Parser) Extensions() []string { return []string{".py", ".pyi"} }

// controlKeywords introduce a nested suite when their line ends with ":".
var controlKeywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true,
	"try": true, "except": true, "finally": true,
	"with": true, "match": true, "case": true,
}

// openSymbol tracks a declaration whose suite is still open.
type openSymbol struct {
	index  int // into unit.Symbols
	indent int
}

// Parse builds the normalized model of one Python file. It never fails:
// unterminated headers set ParseError on the unit and keep the symbols
// recovered so far.
func (p *Parser) Parse(path string, content []byte) *core.SourceUnit {
	lines := frontend.SplitLines(content)
	unit := &core.SourceUnit{
		Path:       path,
		Language:   p.Language(),
		Lines:      lines,
		LineCount:  len(lines),
		BlockDepth: make([]int, len(lines)),
	}

	var blockIndents []int // open control blocks, by header indent
	var symStack []openSymbol
	lastCode := 0 // 1-based line of the last non-blank, non-comment line

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			unit.BlockDepth[i] = len(blockIndents)
			continue
		}
		indent := indentWidth(lines[i])

		// A dedent closes every control block and symbol suite whose
		// header sits at or beyond this indent.
		for len(blockIndents) > 0 && indent <= blockIndents[len(blockIndents)-1] {
			blockIndents = blockIndents[:len(blockIndents)-1]
		}
		for len(symStack) > 0 && indent <= symStack[len(symStack)-1].indent {
			top := symStack[len(symStack)-1]
			unit.Symbols[top.index].EndLine = lastCode
			symStack = symStack[:len(symStack)-1]
		}

		unit.BlockDepth[i] = len(blockIndents)
		lastCode = i + 1

		keyword := firstWord(trimmed)
		if keyword == "async" {
			keyword = firstWord(strings.TrimSpace(strings.TrimPrefix(trimmed, "async")))
		}
		switch {
		case keyword == "def" || keyword == "class":
			header, endIdx, ok := joinHeader(lines, i)
			for j := i + 1; j <= endIdx && j < len(lines); j++ {
				unit.BlockDepth[j] = len(blockIndents)
				lastCode = j + 1
			}
			if !ok {
				unit.ParseError = fmt.Sprintf("line %d: unterminated declaration header", i+1)
			}
			sym := p.buildSymbol(header, i+1, indent, unit, symStack)
			unit.Symbols = append(unit.Symbols, sym)
			symStack = append(symStack, openSymbol{index: len(unit.Symbols) - 1, indent: indent})
			i = endIdx
		case controlKeywords[keyword]:
			if opensSuite(trimmed) {
				blockIndents = append(blockIndents, indent)
			}
			if isBareExcept(trimmed) && len(symStack) > 0 {
				top := symStack[len(symStack)-1].index
				unit.Symbols[top].BareHandlerLines = append(unit.Symbols[top].BareHandlerLines, i+1)
			}
		}
	}

	for len(symStack) > 0 {
		top := symStack[len(symStack)-1]
		unit.Symbols[top.index].EndLine = lastCode
		symStack = symStack[:len(symStack)-1]
	}

	// Docstring detection needs the full line array, so it runs as a
	// second pass over the closed symbols.
	for i := range unit.Symbols {
		unit.Symbols[i].HasDocstring = hasDocstring(lines, &unit.Symbols[i])
	}
	return unit
}

// buildSymbol parses one joined declaration header into a Symbol.
func (p *Parser) buildSymbol(header string, startLine, indent int, unit *core.SourceUnit, symStack []openSymbol) core.Symbol {
	trimmed := strings.TrimSpace(header)
	parent := core.NoParent
	if len(symStack) > 0 {
		parent = symStack[len(symStack)-1].index
	}

	sym := core.Symbol{
		StartLine: startLine,
		EndLine:   startLine,
		Parent:    parent,
	}

	if strings.HasPrefix(trimmed, "class") {
		sym.Kind = core.KindClass
		sym.Name = declName(strings.TrimPrefix(trimmed, "class"))
		return sym
	}

	sym.Kind = core.KindFunction
	rest := strings.TrimPrefix(trimmed, "async ")
	rest = strings.TrimPrefix(rest, "def")
	sym.Name = declName(rest)

	params, returns := splitSignature(trimmed)
	inClass := parent != core.NoParent && unit.Symbols[parent].Kind == core.KindClass
	sym.ParameterCount, sym.HasTypeAnnotations, sym.DefaultArgKinds = analyzeParams(params, inClass)
	if !strings.Contains(returns, "->") {
		sym.HasTypeAnnotations = false
	}
	return sym
}

// declName extracts the identifier following def/class.
func declName(s string) string {
	s = strings.TrimSpace(s)
	for i, r := range s {
		if r == '(' || r == ':' || r == ' ' || r == '[' {
			return s[:i]
		}
	}
	return s
}

// joinHeader merges a declaration header that continues across lines until
// its parentheses balance. Returns the joined header, the index of its last
// line and false when the file ends mid-header.
func joinHeader(lines []string, start int) (string, int, bool) {
	var sb strings.Builder
	depth := 0
	for i := start; i < len(lines); i++ {
		sb.WriteString(lines[i])
		sb.WriteString(" ")
		depth += parenBalance(lines[i])
		if depth <= 0 {
			return sb.String(), i, true
		}
	}
	return sb.String(), len(lines) - 1, false
}

// parenBalance counts net bracket depth outside string literals.
func parenBalance(line string) int {
	depth := 0
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == quote && (i == 0 || line[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			return depth
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return depth
}

// splitSignature separates the parameter list from the return annotation.
func splitSignature(header string) (params, returns string) {
	open := strings.IndexByte(header, '(')
	if open < 0 {
		return "", ""
	}
	depth := 0
	for i := open; i < len(header); i++ {
		switch header[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
			if depth == 0 {
				return header[open+1 : i], header[i+1:]
			}
		}
	}
	return header[open+1:], ""
}

// analyzeParams derives parameter facts from the raw parameter list.
// self/cls receivers on methods are not counted as parameters.
func analyzeParams(params string, inClass bool) (count int, annotated bool, defaultKinds []string) {
	annotated = true
	seenKind := make(map[string]bool)
	for idx, raw := range splitTopLevel(params) {
		p := strings.TrimSpace(raw)
		if p == "" || p == "*" || p == "/" {
			continue
		}
		name := strings.TrimLeft(p, "*")
		if idx == 0 && inClass && (firstWord(name) == "self" || firstWord(name) == "cls" ||
			strings.HasPrefix(name, "self:") || strings.HasPrefix(name, "cls:")) {
			continue
		}
		count++

		colon, eq := topLevelIndex(p, ':'), topLevelIndex(p, '=')
		if colon < 0 || (eq >= 0 && eq < colon) {
			annotated = false
		}
		if eq >= 0 {
			if kind := defaultKind(strings.TrimSpace(p[eq+1:])); kind != "" && !seenKind[kind] {
				seenKind[kind] = true
				defaultKinds = append(defaultKinds, kind)
			}
		}
	}
	if count == 0 {
		annotated = true
	}
	return count, annotated, defaultKinds
}

// defaultKind classifies a default value expression; empty means benign.
func defaultKind(value string) string {
	switch {
	case strings.HasPrefix(value, "["), strings.HasPrefix(value, "{"),
		strings.HasPrefix(value, "list("), strings.HasPrefix(value, "dict("),
		strings.HasPrefix(value, "set("):
		return core.DefaultKindMutableLiteral
	default:
		return ""
	}
}

// splitTopLevel splits on commas outside brackets and string literals.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	var quote byte
	last := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	if strings.TrimSpace(s[last:]) != "" {
		parts = append(parts, s[last:])
	}
	return parts
}

// topLevelIndex returns the index of c outside brackets and strings, or -1.
func topLevelIndex(s string, c byte) int {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if quote != 0 {
			if ch == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch ch {
		case '\'', '"':
			quote = ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		default:
			if ch == c && depth == 0 {
				return i
			}
		}
	}
	return -1
}

// hasDocstring reports whether the first statement of the symbol's suite is
// a string literal.
func hasDocstring(lines []string, sym *core.Symbol) bool {
	headerIndent := -1
	if sym.StartLine-1 < len(lines) {
		headerIndent = indentWidth(lines[sym.StartLine-1])
	}
	for i := sym.StartLine; i < sym.EndLine && i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentWidth(lines[i]) <= headerIndent {
			return false
		}
		return strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") ||
			strings.HasPrefix(trimmed, `r"""`) || strings.HasPrefix(trimmed, `"`) ||
			strings.HasPrefix(trimmed, `'`)
	}
	return false
}

// opensSuite reports whether the line introduces an indented suite, i.e.
// ends with ":" once trailing comments are stripped. One-liners like
// "if x: return" carry their suite inline and open no block.
func opensSuite(trimmed string) bool {
	if idx := commentStart(trimmed); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return strings.HasSuffix(trimmed, ":")
}

func isBareExcept(trimmed string) bool {
	if idx := commentStart(trimmed); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return trimmed == "except:" || strings.TrimSpace(strings.TrimPrefix(trimmed, "except")) == ":"
}

// commentStart locates a "#" outside string literals, or -1.
func commentStart(s string) int {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote && (i == 0 || s[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			return i
		}
	}
	return -1
}

func firstWord(s string) string {
	for i, r := range s {
		if r == ' ' || r == ':' || r == '(' {
			return s[:i]
		}
	}
	return s
}

// indentWidth measures leading whitespace; tabs count as four columns.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
