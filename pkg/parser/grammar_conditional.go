package parser

// Conditional emits a meta segment (typically an indent or dedent) only
// when a named boolean flag is set on the dialect. When the flag is off it
// succeeds with no output, so layouts can be toggled per dialect without
// rewriting grammars.
type Conditional struct {
	grammarBase
	meta *Meta
	flag string
}

// NewConditional builds a flag-gated meta emitter.
func NewConditional(meta *Meta, flag string) *Conditional {
	return &Conditional{grammarBase: newGrammarBase(), meta: meta, flag: flag}
}

// Match emits the meta segment when the flag is enabled.
func (c *Conditional) Match(segs []*Segment, idx int, ctx *Context) MatchResult {
	if !ctx.Registry.BoolFlag(c.flag) {
		return emptyMatch(idx)
	}
	return c.meta.Match(segs, idx, ctx)
}
