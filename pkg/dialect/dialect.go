// Package dialect defines the mutable grammar container SQL dialects are
// built from. A Dialect bundles a named grammar library, an ordered lexer
// matcher list, keyword sets, bracket pairs and boolean behavior flags.
// Concrete dialects live in pkg/dialects/*/ packages, register themselves
// in init(), and typically start from a copy of their parent dialect and
// mutate it.
package dialect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

// Dialect is a grammar registry under construction. Mutations (Add,
// ReplaceGrammar, InsertLexerMatchers, SetsMut, ...) happen at definition
// time, single-goroutine; after Expand the dialect is treated as frozen
// and is safe for concurrent readers. It implements parser.Registry.
type Dialect struct {
	name          string
	library       map[string]parser.Matchable
	lexerMatchers []*parser.Matcher
	bracketPairs  map[string]parser.BracketPair
	keywordSets   map[string]map[string]struct{}
	flags         map[string]bool
	expanded      bool
}

// New creates an empty dialect with the given name.
func New(name string) *Dialect {
	return &Dialect{
		name:         name,
		library:      make(map[string]parser.Matchable),
		bracketPairs: make(map[string]parser.BracketPair),
		keywordSets:  make(map[string]map[string]struct{}),
		flags:        make(map[string]bool),
	}
}

// Copy returns an independent dialect seeded with this dialect's entire
// contents. Grammar values are shared (they are not mutated after
// definition); all containers are copied, so mutating the child never
// affects the parent.
func (d *Dialect) Copy(name string) *Dialect {
	nd := New(name)
	for k, v := range d.library {
		nd.library[k] = v
	}
	nd.lexerMatchers = append([]*parser.Matcher(nil), d.lexerMatchers...)
	for k, v := range d.bracketPairs {
		nd.bracketPairs[k] = v
	}
	for k, set := range d.keywordSets {
		cp := make(map[string]struct{}, len(set))
		for kw := range set {
			cp[kw] = struct{}{}
		}
		nd.keywordSets[k] = cp
	}
	for k, v := range d.flags {
		nd.flags[k] = v
	}
	return nd
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.name }

// Add binds a grammar to a new name. Adding a name twice is a
// dialect-definition bug and panics; use ReplaceGrammar to override.
func (d *Dialect) Add(name string, g parser.Matchable) {
	if _, exists := d.library[name]; exists {
		panic(fmt.Sprintf("dialect %q already defines grammar %q", d.name, name))
	}
	d.library[name] = g
}

// ReplaceGrammar overrides an existing binding. Replacing an unknown name
// is a dialect-definition bug and panics; use Add to define.
func (d *Dialect) ReplaceGrammar(name string, g parser.Matchable) {
	if _, exists := d.library[name]; !exists {
		panic(fmt.Sprintf("dialect %q has no grammar %q to replace", d.name, name))
	}
	d.library[name] = g
}

// GrammarByName resolves a grammar. Unknown names panic: a dangling
// reference is a definition bug, not a runtime condition.
func (d *Dialect) GrammarByName(name string) parser.Matchable {
	g, ok := d.library[name]
	if !ok {
		panic(fmt.Sprintf("dialect %q has no grammar named %q", d.name, name))
	}
	return g
}

// GrammarNames returns all bound grammar names, sorted.
func (d *Dialect) GrammarNames() []string {
	names := make([]string, 0, len(d.library))
	for name := range d.library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LexerMatchers returns the ordered matcher list. Callers must not mutate
// the returned slice.
func (d *Dialect) LexerMatchers() []*parser.Matcher {
	return d.lexerMatchers
}

// SetLexerMatchers replaces the whole matcher list. Used by root dialects
// to establish the base ordering.
func (d *Dialect) SetLexerMatchers(matchers []*parser.Matcher) {
	d.lexerMatchers = matchers
}

// InsertLexerMatchers inserts matchers immediately before the named
// anchor. Order is lexical precedence, so insertion position is part of
// the dialect's meaning. An unknown anchor panics.
func (d *Dialect) InsertLexerMatchers(matchers []*parser.Matcher, before string) {
	at := -1
	for i, m := range d.lexerMatchers {
		if m.Name() == before {
			at = i
			break
		}
	}
	if at < 0 {
		panic(fmt.Sprintf("dialect %q has no lexer matcher %q to insert before", d.name, before))
	}
	out := make([]*parser.Matcher, 0, len(d.lexerMatchers)+len(matchers))
	out = append(out, d.lexerMatchers[:at]...)
	out = append(out, matchers...)
	out = append(out, d.lexerMatchers[at:]...)
	d.lexerMatchers = out
}

// PatchLexerMatchers replaces, in place, the matchers with the same names.
// A patch with no existing matcher to replace panics.
func (d *Dialect) PatchLexerMatchers(matchers []*parser.Matcher) {
	for _, patch := range matchers {
		found := false
		for i, m := range d.lexerMatchers {
			if m.Name() == patch.Name() {
				d.lexerMatchers[i] = patch
				found = true
				break
			}
		}
		if !found {
			panic(fmt.Sprintf("dialect %q has no lexer matcher %q to patch", d.name, patch.Name()))
		}
	}
}

// AddBracketPair registers a bracket pairing under its key.
func (d *Dialect) AddBracketPair(p parser.BracketPair) {
	d.bracketPairs[p.Key] = p
}

// BracketPair looks up a bracket pairing by key.
func (d *Dialect) BracketPair(key string) (parser.BracketPair, bool) {
	p, ok := d.bracketPairs[key]
	return p, ok
}

// SetsMut returns the named keyword set for mutation, creating it if
// needed. Keywords are stored uppercase.
func (d *Dialect) SetsMut(name string) map[string]struct{} {
	set, ok := d.keywordSets[name]
	if !ok {
		set = make(map[string]struct{})
		d.keywordSets[name] = set
	}
	return set
}

// UpdateKeywords adds the given keywords (uppercased) to the named set.
func (d *Dialect) UpdateKeywords(name string, keywords ...string) {
	set := d.SetsMut(name)
	for _, kw := range keywords {
		set[strings.ToUpper(kw)] = struct{}{}
	}
}

// RemoveKeywords removes the given keywords from the named set.
func (d *Dialect) RemoveKeywords(name string, keywords ...string) {
	set := d.SetsMut(name)
	for _, kw := range keywords {
		delete(set, strings.ToUpper(kw))
	}
}

// KeywordSet returns the named keyword set for reading. Missing sets
// resolve to an empty set.
func (d *Dialect) KeywordSet(name string) map[string]struct{} {
	return d.keywordSets[name]
}

// SetFlag sets a boolean behavior flag (e.g. layout toggles read by
// Conditional grammars).
func (d *Dialect) SetFlag(name string, value bool) {
	d.flags[name] = value
}

// BoolFlag reads a behavior flag. Unset flags are false.
func (d *Dialect) BoolFlag(name string) bool {
	return d.flags[name]
}

// Expand finalizes the dialect for parsing: every keyword in the reserved
// and unreserved sets gets an auto-generated "<KW>KeywordSegment" grammar
// (unless one is already bound, so dialects can hand-craft specific
// keywords). Expand is idempotent and must run after all mutations.
func (d *Dialect) Expand() {
	for _, setName := range []string{"reserved_keywords", "unreserved_keywords"} {
		for kw := range d.keywordSets[setName] {
			name := kw + "KeywordSegment"
			if _, exists := d.library[name]; !exists {
				d.library[name] = parser.NewKeyword(kw)
			}
		}
	}
	d.expanded = true
}

// Expanded reports whether Expand has run.
func (d *Dialect) Expanded() bool { return d.expanded }

// Lexer builds a lexer over this dialect's matcher list.
func (d *Dialect) Lexer() *parser.Lexer {
	return parser.NewLexer(d.lexerMatchers)
}

// Parser builds a parser over this dialect. Parsing an unexpanded dialect
// is a setup bug and panics.
func (d *Dialect) Parser() *parser.Parser {
	if !d.expanded {
		panic(fmt.Sprintf("dialect %q used before Expand", d.name))
	}
	return parser.NewParser(d)
}

// RegisterKind is a convenience for dialects introducing syntax kinds the
// core set does not know about (e.g. a qualify clause).
func RegisterKind(name string) token.SyntaxKind {
	return token.Register(name)
}
