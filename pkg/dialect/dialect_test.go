package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func TestAddAndReplace(t *testing.T) {
	d := New("test")
	g := parser.NewKeyword("SELECT")

	d.Add("SelectKeyword", g)
	assert.Same(t, g, d.GrammarByName("SelectKeyword"))

	assert.Panics(t, func() { d.Add("SelectKeyword", g) })
	assert.Panics(t, func() { d.ReplaceGrammar("NoSuch", g) })
	assert.Panics(t, func() { d.GrammarByName("NoSuch") })

	replacement := parser.NewKeyword("SELECT")
	d.ReplaceGrammar("SelectKeyword", replacement)
	assert.Same(t, replacement, d.GrammarByName("SelectKeyword"))
}

func TestLexerMatcherMutations(t *testing.T) {
	d := New("test")
	d.SetLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("comma", ",", parser.KindCtor(token.Comma)),
		parser.StringMatcher("dot", ".", parser.KindCtor(token.Dot)),
	})

	d.InsertLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("semicolon", ";", parser.KindCtor(token.Semicolon)),
	}, "dot")

	var names []string
	for _, m := range d.LexerMatchers() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"comma", "semicolon", "dot"}, names)

	assert.Panics(t, func() {
		d.InsertLexerMatchers([]*parser.Matcher{
			parser.StringMatcher("colon", ":", parser.KindCtor(token.Colon)),
		}, "no_such_anchor")
	})

	d.PatchLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("dot", "!", parser.KindCtor(token.Dot)),
	})
	assert.Equal(t, "dot", d.LexerMatchers()[2].Name())

	assert.Panics(t, func() {
		d.PatchLexerMatchers([]*parser.Matcher{
			parser.StringMatcher("unknown", "?", parser.KindCtor(token.Symbol)),
		})
	})
}

func TestCopyIsolation(t *testing.T) {
	parent := New("parent")
	parent.Add("Shared", parser.NewKeyword("SHARED"))
	parent.UpdateKeywords("reserved_keywords", "select")
	parent.SetFlag("indented_joins", true)
	parent.SetLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("comma", ",", parser.KindCtor(token.Comma)),
	})
	parent.AddBracketPair(parser.BracketPair{Key: "round"})

	child := parent.Copy("child")
	assert.Equal(t, "child", child.Name())
	assert.Same(t, parent.GrammarByName("Shared"), child.GrammarByName("Shared"))

	// Child mutations never leak back into the parent.
	child.Add("ChildOnly", parser.NewKeyword("EXTRA"))
	child.UpdateKeywords("reserved_keywords", "qualify")
	child.SetFlag("indented_joins", false)
	child.InsertLexerMatchers([]*parser.Matcher{
		parser.StringMatcher("dot", ".", parser.KindCtor(token.Dot)),
	}, "comma")

	assert.Panics(t, func() { parent.GrammarByName("ChildOnly") })
	_, inParent := parent.KeywordSet("reserved_keywords")["QUALIFY"]
	assert.False(t, inParent)
	assert.True(t, parent.BoolFlag("indented_joins"))
	assert.Len(t, parent.LexerMatchers(), 1)
	assert.Len(t, child.LexerMatchers(), 2)
}

func TestKeywordSets(t *testing.T) {
	d := New("test")
	d.UpdateKeywords("reserved_keywords", "select", "FROM")

	set := d.KeywordSet("reserved_keywords")
	_, ok := set["SELECT"]
	assert.True(t, ok, "keywords are stored uppercase")
	_, ok = set["FROM"]
	assert.True(t, ok)

	d.RemoveKeywords("reserved_keywords", "Select")
	_, ok = d.KeywordSet("reserved_keywords")["SELECT"]
	assert.False(t, ok)

	assert.Empty(t, d.KeywordSet("no_such_set"))
}

func TestExpand(t *testing.T) {
	d := New("test")
	d.UpdateKeywords("reserved_keywords", "select")
	d.UpdateKeywords("unreserved_keywords", "key")

	handCrafted := parser.NewKeyword("SELECT")
	d.Add("SELECTKeywordSegment", handCrafted)

	require.False(t, d.Expanded())
	d.Expand()
	require.True(t, d.Expanded())

	// A pre-bound keyword grammar survives expansion.
	assert.Same(t, handCrafted, d.GrammarByName("SELECTKeywordSegment"))
	// Unbound keywords get an auto-generated grammar.
	assert.NotNil(t, d.GrammarByName("KEYKeywordSegment"))

	// Expand is idempotent.
	assert.NotPanics(t, d.Expand)
}

func TestParserRequiresExpand(t *testing.T) {
	d := New("test")
	assert.Panics(t, func() { d.Parser() })

	d.Expand()
	assert.NotNil(t, d.Parser())
}

func TestRegistry(t *testing.T) {
	d := New("Registry_Test_Dialect")
	Register(d)

	got, ok := Get("registry_test_dialect")
	require.True(t, ok, "lookup is case-insensitive")
	assert.Same(t, d, got)

	_, ok = Get("never_registered")
	assert.False(t, ok)
	assert.Panics(t, func() { MustGet("never_registered") })

	assert.Contains(t, List(), "registry_test_dialect")
}
