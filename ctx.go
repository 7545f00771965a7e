package ncc

import "fmt"

// trailEntry records one accepted rule match so it can be undone later if
// an enclosing node backtracks over it.
type trailEntry struct {
	rule *Rule
	data *MatchingData
}

// Ctx carries per-match state through a single Match/substitute attempt: the
// trail of accepted rule matches (for backtracking) and the stack of
// currently-open rule frames (for variable collection). A Ctx is created
// fresh for each top-level root-candidate attempt; it is never shared across
// candidates.
type Ctx struct {
	engine *Engine
	trail  []trailEntry
	frames []*MatchingData
	err    error
}

func newCtx(e *Engine) *Ctx {
	return &Ctx{engine: e}
}

// mark returns a position in the trail that can later be passed to isolate
// or rejectTo to undo everything committed since.
func (c *Ctx) mark() int { return len(c.trail) }

// isolate removes and returns everything committed since mark, restoring the
// trail to its length at mark. Used by orNode to keep each alternative's
// commits separate until one of them is chosen.
func (c *Ctx) isolate(mark int) []trailEntry {
	delta := append([]trailEntry(nil), c.trail[mark:]...)
	c.trail = c.trail[:mark]
	return delta
}

// adopt appends a previously-isolated delta back onto the trail, e.g. the
// winning side of an Or.
func (c *Ctx) adopt(entries []trailEntry) {
	c.trail = append(c.trail, entries...)
}

// fireReject undoes the bookkeeping effect of one trail entry (popping a
// pushed variable off its enclosing frame, if any) and fires the rule's
// OnReject listener.
func (c *Ctx) fireReject(e trailEntry) {
	tracer().Debugf("ncc: rejecting rule %q match at offset %d", e.rule.Name, e.data.Offset)
	if e.data.pushed && e.data.enclosing != nil {
		if n := len(e.data.enclosing.variables); n > 0 {
			e.data.enclosing.variables = e.data.enclosing.variables[:n-1]
		}
	}
	if e.rule.Listeners.OnReject != nil {
		e.rule.Listeners.OnReject(e.data)
	}
}

// rejectEntries undoes an isolated delta in reverse (most recently committed
// first), without touching the live trail.
func (c *Ctx) rejectEntries(entries []trailEntry) {
	for i := len(entries) - 1; i >= 0; i-- {
		c.fireReject(entries[i])
	}
}

// rejectTo pops and undoes every trail entry committed since mark, most
// recent first.
func (c *Ctx) rejectTo(mark int) {
	if len(c.trail) > mark {
		tracer().Debugf("ncc: unwinding trail from %d entries back to %d", len(c.trail), mark)
	}
	for len(c.trail) > mark {
		last := c.trail[len(c.trail)-1]
		c.trail = c.trail[:len(c.trail)-1]
		c.fireReject(last)
	}
}

// rejectLast undoes exactly the most recently committed trail entry, leaving
// any earlier entries (including those of rules nested inside it) in place.
func (c *Ctx) rejectLast() {
	if len(c.trail) == 0 {
		return
	}
	last := c.trail[len(c.trail)-1]
	c.trail = c.trail[:len(c.trail)-1]
	c.fireReject(last)
}

// substitute resolves name to a rule and attempts to match its body at
// offset, running the full listener discipline: OnMatchStart before the
// attempt, OnMatchEnd once a length is known (able to veto), and OnReject
// for any attempt that does not end up accepted. On success the match is
// appended to the trail and, if the rule carries PushVariable, a Variable
// is pushed onto the directly enclosing rule's frame.
//
// This is also how the top-level root-candidate match (see Engine.Match)
// invokes each candidate rule, so a root rule's own listeners fire exactly
// like any rule reached through a Substitute node.
func (c *Ctx) substitute(name, text string, offset int) (MatchLen, bool) {
	rule, ok := c.engine.resolve(name)
	if !ok {
		if c.err == nil {
			c.err = fmt.Errorf("%w: %q", ErrUnknownRule, name)
		}
		tracer().Debugf("ncc: substitute %q at %d: unresolved rule", name, offset)
		return Reject, false
	}

	var enclosing *MatchingData
	if n := len(c.frames); n > 0 {
		enclosing = c.frames[n-1]
	}
	data := &MatchingData{Rule: rule, Text: text, Offset: offset, enclosing: enclosing}
	if rule.Listeners.OnMatchStart != nil {
		rule.Listeners.OnMatchStart(data)
	}

	c.frames = append(c.frames, data)
	bodyLen := rule.body.Match(c, text, offset)
	c.frames = c.frames[:len(c.frames)-1]

	if !bodyLen.ok() {
		tracer().Debugf("ncc: substitute %q at %d: body rejected", name, offset)
		if rule.Listeners.OnReject != nil {
			rule.Listeners.OnReject(data)
		}
		return Reject, false
	}

	data.Length = int(bodyLen)
	accepted := true
	if rule.Listeners.OnMatchEnd != nil {
		accepted = rule.Listeners.OnMatchEnd(data)
	}
	if !accepted {
		tracer().Debugf("ncc: substitute %q at %d: vetoed by OnMatchEnd after matching %d bytes", name, offset, int(bodyLen))
		if rule.Listeners.OnReject != nil {
			rule.Listeners.OnReject(data)
		}
		return Reject, false
	}
	tracer().Debugf("ncc: substitute %q at %d: matched %d bytes", name, offset, int(bodyLen))

	if rule.Flags&PushVariable != 0 && enclosing != nil {
		value := data.Node
		if value == nil {
			// No listener claimed a payload slot for this match; fall back
			// to the matched substring so value-only listeners (e.g. a
			// code-emitting grammar with no AST) still get something
			// useful off the variable stack.
			value = text[offset : offset+int(bodyLen)]
		}
		enclosing.variables = append(enclosing.variables, Variable{Name: rule.Name, Value: value})
		data.pushed = true
	}
	c.trail = append(c.trail, trailEntry{rule: rule, data: data})
	return bodyLen, true
}
