package ncc

// Node is the closed set of compiled rule-graph node types. A graph is a
// singly-linked chain of nodes; control-flow nodes additionally own one or
// two independent rooted sub-graphs (see the package-level invariants in
// SPEC_FULL.md §3). Node graphs are immutable once compiled — compile
// never hands back a partially-built graph, and nothing after compilation
// mutates a node's fields. Dispatch is plain Go interface/virtual-method
// dispatch: each concrete type implements its own Match. The one place the
// node set is enumerated by concrete type is setNext in compile.go, which
// type-switches over the handful of node kinds that carry a next field.
type Node interface {
	// Match attempts this node (and everything chained after it) against
	// text starting at offset, returning the total number of bytes
	// consumed or Reject.
	Match(ctx *Ctx, text string, offset int) MatchLen
}

// rootNode is transparent: every rule body and every control-flow
// sub-graph starts at one.
type rootNode struct{ next Node }

func (n *rootNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	return n.next.Match(ctx, text, offset)
}

// acceptNode terminates a graph. Reaching it means the graph accepted,
// even if input remains.
type acceptNode struct{}

func (n *acceptNode) Match(ctx *Ctx, text string, offset int) MatchLen { return 0 }

// literalNode matches a single exact byte.
type literalNode struct {
	ch   byte
	next Node
}

func (n *literalNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	if offset >= len(text) || text[offset] != n.ch {
		return Reject
	}
	tail := n.next.Match(ctx, text, offset+1)
	if !tail.ok() {
		return Reject
	}
	return 1 + tail
}

// rangeNode matches a single byte within an inclusive range.
type rangeNode struct {
	lo, hi byte
	next   Node
}

func (n *rangeNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	if offset >= len(text) {
		return Reject
	}
	c := text[offset]
	if c < n.lo || c > n.hi {
		return Reject
	}
	tail := n.next.Match(ctx, text, offset+1)
	if !tail.ok() {
		return Reject
	}
	return 1 + tail
}

// orNode picks the longer of two independently-rooted alternatives,
// left-biased on ties.
type orNode struct {
	lhs, rhs Node
	next     Node
}

func (n *orNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	mark := ctx.mark()
	lhsLen := n.lhs.Match(ctx, text, offset)
	lhsTrail := ctx.isolate(mark)
	rhsLen := n.rhs.Match(ctx, text, offset)
	rhsTrail := ctx.isolate(mark)

	if !lhsLen.ok() && !rhsLen.ok() {
		tracer().Debugf("ncc: or at %d: both alternatives rejected", offset)
		return Reject
	}
	var chosen MatchLen
	var winner, loser []trailEntry
	var side string
	switch {
	case !lhsLen.ok():
		chosen, winner, loser, side = rhsLen, rhsTrail, lhsTrail, "rhs (lhs rejected)"
	case !rhsLen.ok():
		chosen, winner, loser, side = lhsLen, lhsTrail, rhsTrail, "lhs (rhs rejected)"
	case lhsLen >= rhsLen: // left-bias on tie
		chosen, winner, loser, side = lhsLen, lhsTrail, rhsTrail, "lhs"
	default:
		chosen, winner, loser, side = rhsLen, rhsTrail, lhsTrail, "rhs"
	}
	tracer().Debugf("ncc: or at %d: %s wins with length %d, rejecting %d losing commit(s)", offset, side, int(chosen), len(loser))
	ctx.rejectEntries(loser)
	ctx.adopt(winner)

	tail := n.next.Match(ctx, text, offset+int(chosen))
	if !tail.ok() {
		tracer().Debugf("ncc: or at %d: tail rejected, unwinding the winning branch too", offset)
		ctx.rejectTo(mark)
		return Reject
	}
	return chosen + tail
}

// subRuleNode groups a `{...}` construct into its own rooted sub-graph,
// matched exactly once.
type subRuleNode struct {
	inner Node
	next  Node
}

func (n *subRuleNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	mark := ctx.mark()
	innerLen := n.inner.Match(ctx, text, offset)
	if !innerLen.ok() {
		return Reject
	}
	tail := n.next.Match(ctx, text, offset+int(innerLen))
	if !tail.ok() {
		tracer().Debugf("ncc: group at %d matched %d bytes but its tail rejected, unwinding", offset, int(innerLen))
		ctx.rejectTo(mark)
		return Reject
	}
	return innerLen + tail
}

// repeatNode implements `X^*`: zero-or-more greedy repetition of body,
// trying to stop (matching follow) before trying to continue.
type repeatNode struct {
	body, follow Node
}

func (n *repeatNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	mark := ctx.mark()
	total := 0
	iterations := 0
	for {
		followLen := n.follow.Match(ctx, text, offset+total)
		if followLen > 0 {
			tracer().Debugf("ncc: repeat at %d: follow matches after %d iteration(s), stopping", offset, iterations)
			return MatchLen(total) + followLen
		}
		bodyLen := n.body.Match(ctx, text, offset+total)
		if bodyLen < 1 {
			if followLen == 0 {
				tracer().Debugf("ncc: repeat at %d: body can no longer advance, accepting %d iteration(s)", offset, iterations)
				return MatchLen(total)
			}
			tracer().Debugf("ncc: repeat at %d: neither body nor follow can advance, unwinding %d iteration(s)", offset, iterations)
			ctx.rejectTo(mark)
			return Reject
		}
		total += int(bodyLen)
		iterations++
	}
}

// anythingNode implements `*` / `*X`: consume arbitrary bytes until follow
// matches, failing only at end of input.
type anythingNode struct {
	follow Node
}

func (n *anythingNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	mark := ctx.mark()
	total := 0
	for {
		followLen := n.follow.Match(ctx, text, offset+total)
		if followLen > 0 {
			tracer().Debugf("ncc: anything at %d: follow found after consuming %d byte(s)", offset, total)
			return MatchLen(total) + followLen
		}
		if offset+total >= len(text) {
			if followLen == 0 {
				return MatchLen(total)
			}
			tracer().Debugf("ncc: anything at %d: hit end of input with follow still rejecting, unwinding", offset)
			ctx.rejectTo(mark)
			return Reject
		}
		total++
	}
}

// substituteNode delegates to another rule by name, running the full
// listener discipline for that rule (see Ctx.substitute in ctx.go).
type substituteNode struct {
	name string
	next Node
}

func (n *substituteNode) Match(ctx *Ctx, text string, offset int) MatchLen {
	mark := ctx.mark()
	ruleLen, ok := ctx.substitute(n.name, text, offset)
	if !ok {
		// A vetoed rule may leave the matches of its nested rules behind.
		ctx.rejectTo(mark)
		return Reject
	}
	tail := n.next.Match(ctx, text, offset+int(ruleLen))
	if !tail.ok() {
		tracer().Debugf("ncc: substitute %q at %d matched %d bytes but its tail rejected, unwinding", n.name, offset, int(ruleLen))
		ctx.rejectTo(mark)
		return Reject
	}
	return ruleLen + tail
}
