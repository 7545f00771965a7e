package ncc

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// registry holds every rule the engine knows about, keyed by name and kept
// in insertion order — the same order Engine.Match walks when resolving the
// implicit root-candidate set, so ambiguity resolution on ties is stable and
// reproducible across runs. Adding a rule under an existing name replaces it
// in place without disturbing its position.
type registry struct {
	byName *linkedhashmap.Map
}

func newRegistry() *registry {
	return &registry{byName: linkedhashmap.New()}
}

func (r *registry) put(rule *Rule) {
	r.byName.Put(rule.Name, rule)
}

func (r *registry) get(name string) (*Rule, bool) {
	v, ok := r.byName.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Rule), true
}

func (r *registry) remove(name string) {
	r.byName.Remove(name)
}

// rootCandidates returns every RootCandidate-flagged rule, in insertion
// order.
func (r *registry) rootCandidates() []*Rule {
	var out []*Rule
	_, values := r.byName.Keys(), r.byName.Values()
	for _, v := range values {
		rule := v.(*Rule)
		if rule.Flags&RootCandidate != 0 {
			out = append(out, rule)
		}
	}
	return out
}

// names returns every registered rule name in insertion order, used by the
// REPL's listing command.
func (r *registry) names() []string {
	keys := r.byName.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k.(string))
	}
	return out
}

func (r *registry) size() int { return r.byName.Size() }
