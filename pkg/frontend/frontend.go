// Package frontend defines the language front end contract and a registry
// of front ends keyed by language tag and file extension.
//
// A front end turns raw file content into a normalized core.SourceUnit. It
// must never abort the run on malformed input: on unrecoverable syntax it
// sets ParseError on the unit and keeps whatever partial symbols it
// recovered (an empty symbol list is valid). Parsing must be idempotent and
// side-effect-free; the only input is the content passed in.
package frontend

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/complyhq/comply/pkg/core"
)

// Parser is the front end contract consumed by the pipeline.
type Parser interface {
	// Language returns the language tag, e.g. "python".
	Language() string

	// Extensions returns the file extensions handled, e.g. [".py"].
	Extensions() []string

	// Parse builds the normalized model of one file. It never fails:
	// unrecoverable input yields a unit with ParseError set.
	Parse(path string, content []byte) *core.SourceUnit
}

// Registry maps language tags and file extensions to front ends.
// Write-once at startup, read-only during a run.
type Registry struct {
	mu     sync.RWMutex
	byLang map[string]Parser
	byExt  map[string]Parser
}

// NewRegistry creates an empty front end registry.
func NewRegistry() *Registry {
	return &Registry{
		byLang: make(map[string]Parser),
		byExt:  make(map[string]Parser),
	}
}

// Register adds a front end. A later registration for the same language or
// extension replaces the earlier one.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byLang[p.Language()] = p
	for _, ext := range p.Extensions() {
		r.byExt[strings.ToLower(ext)] = p
	}
}

// ForLanguage returns the front end for a language tag.
func (r *Registry) ForLanguage(tag string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byLang[tag]
	return p, ok
}

// ForPath returns the front end handling the file's extension.
func (r *Registry) ForPath(path string) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return p, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// SplitLines splits raw content into lines for a SourceUnit, without the
// trailing empty element a final newline would otherwise produce.
func SplitLines(content []byte) []string {
	s := strings.ReplaceAll(string(content), "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
