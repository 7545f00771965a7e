package ncc

import (
	"fmt"
	"sync"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ncc'.
func tracer() tracing.Trace {
	return tracing.Select("ncc")
}

// Engine holds a registry of compiled rules and an optional explicit root.
// All exported methods are safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	registry *registry
	root     string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithRoot sets the engine's root rule up front, equivalent to calling
// SetRoot right after New.
func WithRoot(name string) Option {
	return func(e *Engine) { e.root = name }
}

// New creates an empty Engine. Rules are added with AddRule.
func New(opts ...Option) *Engine {
	e := &Engine{registry: newRegistry()}
	for _, opt := range opts {
		opt(e)
	}
	tracer().Debugf("ncc: new engine created")
	return e
}

// AddRule compiles body and registers it under name with the given flags and
// listeners. Adding a rule under a name that already exists replaces it,
// without needing to remove it first — grammars are commonly built
// incrementally or patched live from a REPL.
func (e *Engine) AddRule(name, body string, flags RuleFlags, listeners Listeners) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, err := compile(name, body)
	if err != nil {
		return err
	}
	rule := &Rule{Name: name, Listeners: listeners, Flags: flags, body: node, source: body}
	e.registry.put(rule)
	tracer().Debugf("ncc: rule %q added (%d rules total)", name, e.registry.size())
	return nil
}

// UpdateRule is an alias for AddRule kept for readability at call sites that
// intend to replace an existing rule rather than declare a new one.
func (e *Engine) UpdateRule(name, body string, flags RuleFlags, listeners Listeners) error {
	return e.AddRule(name, body, flags, listeners)
}

// RemoveRule drops a rule from the engine. Existing Substitute references to
// it will fail to resolve on the next match.
func (e *Engine) RemoveRule(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.registry.remove(name)
}

// SetRoot pins the rule used for Match, bypassing implicit root-candidate
// resolution.
func (e *Engine) SetRoot(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = name
}

// RuleNames returns every registered rule name in insertion order.
func (e *Engine) RuleNames() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.registry.names()
}

func (e *Engine) resolve(name string) (*Rule, bool) {
	return e.registry.get(name)
}

// attemptKey computes a short correlation hash for one root-candidate
// attempt, so a trace consumer can tell which (rule, input) pair an attempt
// log line belongs to without printing the whole input text at Debug level.
func attemptKey(ruleName, text string) string {
	h, err := structhash.Hash(struct {
		Rule string
		Text string
	}{Rule: ruleName, Text: text}, 1)
	if err != nil {
		// structhash only errors on unhashable types; a string pair never
		// hits that path, but the API still demands the check.
		return "?"
	}
	return h
}

// Result reports the outcome of a top-level Match.
type Result struct {
	Matched bool
	Rule    string
	Span    Span
	// Err is set when no candidate matched and at least one of them failed
	// because of an unresolvable rule name (an unresolved Substitute), as
	// opposed to an ordinary grammatical rejection. It is always nil when
	// Matched is true.
	Err error
}

// Match runs the engine against text starting at offset 0.
//
// If an explicit root has been set (via New(WithRoot(...)) or SetRoot), only
// that rule is tried. Otherwise every rule flagged RootCandidate is tried
// independently and the longest successful match wins, left-biased
// (insertion order) on ties — the same rule applied one level up from
// orNode's own tie-break.
//
// Only the winning candidate's listeners end up firing for real: every
// losing candidate's commits are rolled back (OnReject fires for each, in
// reverse order) before Match returns.
func (e *Engine) Match(text string) (Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var candidates []*Rule
	if e.root != "" {
		rule, ok := e.registry.get(e.root)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownRule, e.root)
		}
		candidates = []*Rule{rule}
	} else {
		candidates = e.registry.rootCandidates()
		if len(candidates) == 0 {
			return Result{}, ErrNoRoot
		}
	}

	best := Reject
	var bestCtx *Ctx
	var bestRule *Rule
	attempts := make([]*Ctx, 0, len(candidates))

	for _, rule := range candidates {
		ctx := newCtx(e)
		length, ok := ctx.substitute(rule.Name, text, 0)
		attempts = append(attempts, ctx)
		tracer().Debugf("ncc: root candidate %q attempt %s -> matched=%v length=%d", rule.Name, attemptKey(rule.Name, text), ok, int(length))
		if ok && length > best {
			best = length
			bestCtx = ctx
			bestRule = rule
		}
	}

	for _, ctx := range attempts {
		if ctx != bestCtx {
			ctx.rejectTo(0)
		}
	}

	if bestCtx == nil {
		tracer().Debugf("ncc: match failed against %d root candidate(s)", len(candidates))
		var err error
		for _, ctx := range attempts {
			if ctx.err != nil {
				err = ctx.err
				break
			}
		}
		return Result{Matched: false, Err: err}, err
	}
	tracer().Infof("ncc: rule %q matched %d bytes", bestRule.Name, int(best))
	return Result{Matched: true, Rule: bestRule.Name, Span: Span{0, int(best)}}, nil
}
