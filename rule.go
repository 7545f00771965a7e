package ncc

// RuleFlags controls how a rule participates in ambiguity resolution and
// variable collection.
type RuleFlags uint8

const (
	// RootCandidate lets a rule participate in the implicit longest-match
	// root used when no explicit SetRoot has been called.
	RootCandidate RuleFlags = 1 << iota
	// PushVariable makes a successful match of this rule push a Variable
	// onto the directly enclosing rule's stack, named after this rule.
	PushVariable
)

// Listeners are the callbacks a rule may carry. All three are optional; a
// nil callback is simply skipped.
type Listeners struct {
	// OnMatchStart fires before the rule's graph is attempted. It may
	// stash a value (e.g. a freshly allocated AST node) into data.Node.
	OnMatchStart func(data *MatchingData)
	// OnMatchEnd fires once the rule's graph has returned a successful
	// length. Returning false vetoes the match: the matcher treats it as
	// a rejection and backtracks.
	OnMatchEnd func(data *MatchingData) bool
	// OnReject fires when a rule match that had already run OnMatchEnd is
	// later undone, either because an enclosing Or chose the other
	// alternative, an enclosing rule's own listener vetoed, or this rule's
	// own match was never accepted in the first place (OnMatchStart ran
	// but the body never produced a length, or OnMatchEnd returned
	// false). It fires at most once per OnMatchStart.
	OnReject func(data *MatchingData)
}

// isZero reports whether l carries no callbacks at all.
func (l Listeners) isZero() bool {
	return l.OnMatchStart == nil && l.OnMatchEnd == nil && l.OnReject == nil
}

// Variable is a named value captured by a nested, PushVariable-flagged rule
// match. Listeners read these off MatchingData.PopVariable to assemble
// their own result (e.g. attach children to an AST node).
type Variable struct {
	Name  string
	Value interface{}
}

// MatchingData is passed to a rule's listeners. The engine owns its
// lifecycle: one value is created per attempted rule match (on the
// Substitute node, or for the top-level root-candidate match) and is valid
// for as long as the listener callbacks for that attempt are running.
type MatchingData struct {
	Rule   *Rule
	Text   string
	Offset int
	// Length is only meaningful once OnMatchEnd is about to fire (or has
	// fired); it is the number of bytes the rule's body consumed.
	Length int
	// Node is a listener-owned slot, typically holding a pointer to an AST
	// node allocated by OnMatchStart and torn down by OnReject.
	Node interface{}

	variables []Variable
	enclosing *MatchingData
	pushed    bool
}

// PushVariable pushes a variable onto this rule's own collected-variable
// stack. Most listeners never call this directly — the engine calls it
// automatically for nested rules flagged with PushVariable — but it is
// exposed for listeners that want to record additional bookkeeping values
// alongside the automatically-collected ones.
func (d *MatchingData) PushVariable(name string, value interface{}) {
	d.variables = append(d.variables, Variable{Name: name, Value: value})
}

// PopVariable pops the most recently collected variable off this rule's
// stack, for use by a listener assembling its own result from nested
// matches. Returns false once the stack is empty.
func (d *MatchingData) PopVariable() (Variable, bool) {
	n := len(d.variables)
	if n == 0 {
		return Variable{}, false
	}
	v := d.variables[n-1]
	d.variables = d.variables[:n-1]
	return v, true
}

// DestroyVariable exists for API symmetry with the C implementation this
// engine descends from, whose destroyVariable was a deliberate no-op left
// for future use. Go's garbage collector reclaims Variable values, so there
// is nothing to do here.
func DestroyVariable(Variable) {}

// Rule is a named, compiled grammar rule. Rule values are immutable once
// built by AddRule; AddRule/UpdateRule always build a fresh one.
type Rule struct {
	Name      string
	Listeners Listeners
	Flags     RuleFlags
	body      Node
	source    string // original body text, kept for diagnostics and REPL listing
}
