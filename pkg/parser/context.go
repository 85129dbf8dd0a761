package parser

// Context carries per-parse state: the dialect registry and the match
// memo. Grammars are position-pure (the same grammar at the same index
// always yields the same result within one parse), so results are cached
// by (grammar ID, index). A Context is single-use and not safe for
// concurrent sharing; create one per Parse call.
type Context struct {
	Registry Registry
	memo     map[memoKey]MatchResult
}

type memoKey struct {
	id  uint32
	idx int
}

// NewContext creates a fresh parse context over the given registry.
func NewContext(reg Registry) *Context {
	return &Context{
		Registry: reg,
		memo:     make(map[memoKey]MatchResult),
	}
}

// Match runs the grammar at idx through the memo. Cached results are
// shared values; callers must not mutate the Matched slice of a result.
func (c *Context) Match(g Matchable, segs []*Segment, idx int) MatchResult {
	key := memoKey{id: g.ID(), idx: idx}
	if res, ok := c.memo[key]; ok {
		return res
	}
	res := g.Match(segs, idx, c)
	c.memo[key] = res
	return res
}
