package ncc

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTest(t *testing.T) func() {
	gtrace.SyntaxTracer = gotestingadapter.New()
	return gotestingadapter.RedirectTracing(t)
}

func mustAddRule(t *testing.T, e *Engine, name, body string, flags RuleFlags) {
	t.Helper()
	if err := e.AddRule(name, body, flags, Listeners{}); err != nil {
		t.Fatalf("AddRule(%q, %q): %v", name, body, err)
	}
}

// Longest-match law: for A|B the match length is max(len(A,s), len(B,s)),
// left-biased on equality.
func TestLongestMatchLaw(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "r", "a|ab", 0)
	res, err := e.Match("ab")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 2 {
		t.Fatalf("want matched length 2, got %+v", res)
	}
}

func TestLongestMatchLeftBiasOnTie(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	var xAccepted, yAccepted, xRejected, yRejected int
	if err := e.AddRule("x", "ab", 0, Listeners{
		OnMatchEnd: func(*MatchingData) bool { xAccepted++; return true },
		OnReject:   func(*MatchingData) { xRejected++ },
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.AddRule("y", "ab", 0, Listeners{
		OnMatchEnd: func(*MatchingData) bool { yAccepted++; return true },
		OnReject:   func(*MatchingData) { yRejected++ },
	}); err != nil {
		t.Fatal(err)
	}
	mustAddRule(t, e, "r", "${x}|${y}", 0)

	res, err := e.Match("ab")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 2 {
		t.Fatalf("want tied match of length 2, got %+v", res)
	}
	if xAccepted != 1 || xRejected != 0 {
		t.Fatalf("want lhs 'x' to win the tie untouched, got accepted=%d rejected=%d", xAccepted, xRejected)
	}
	if yAccepted != 1 || yRejected != 1 {
		t.Fatalf("want rhs 'y' to be accepted then rolled back, got accepted=%d rejected=%d", yAccepted, yRejected)
	}
}

// Empty-rule identity: ${e} X matches exactly what X matches.
func TestEmptyRuleIdentity(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "e", "", 0)
	mustAddRule(t, e, "r", "${e}abc", 0)
	res, err := e.Match("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 3 {
		t.Fatalf("want length 3, got %+v", res)
	}
}

// Sub-rule transparency: {X} matches identically to X for a plain chain.
func TestSubRuleTransparency(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "r", "{abc}", 0)
	res, err := e.Match("abc")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 3 {
		t.Fatalf("want length 3, got %+v", res)
	}
}

// Repeat zero-matches: X^* Y against input matching only Y yields len(Y).
func TestRepeatZeroMatches(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "r", "a^*bc", 0)
	res, err := e.Match("bc")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 2 {
		t.Fatalf("want length 2 (zero repetitions), got %+v", res)
	}
}

// Anything-until greediness: *END against "aaaENDbbbEND" stops at the
// first END.
func TestAnythingUntilStopsAtFirstMatch(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "r", "*END", 0)
	res, err := e.Match("aaaENDbbbEND")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 6 {
		t.Fatalf("want length 6 (stop at first END), got %+v", res)
	}
}

// Listener veto rolls back: a rule whose OnMatchEnd returns false causes
// the containing Or to pick the other branch, and OnReject fires exactly
// once for the vetoed candidate.
func TestListenerVetoRollsBackToOtherBranch(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	rejectCount := 0
	if err := e.AddRule("vetoed", "ab", 0, Listeners{
		OnMatchEnd: func(*MatchingData) bool { return false },
		OnReject:   func(*MatchingData) { rejectCount++ },
	}); err != nil {
		t.Fatal(err)
	}
	mustAddRule(t, e, "fallback", "a", 0)
	mustAddRule(t, e, "r", "${vetoed}|${fallback}", 0)

	res, err := e.Match("ab")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 1 {
		t.Fatalf("want fallback match of length 1, got %+v", res)
	}
	if rejectCount != 1 {
		t.Fatalf("want OnReject fired exactly once, got %d", rejectCount)
	}
}

// Forward declaration: referencing ${B} before B is registered must behave
// identically to defining B first, once both exist at match time.
func TestForwardDeclaration(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("a"))
	mustAddRule(t, e, "a", "${b}!", 0)
	mustAddRule(t, e, "b", "hi", 0)
	res, err := e.Match("hi!")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Span.Len() != 3 {
		t.Fatalf("want length 3, got %+v", res)
	}
}

func TestUnresolvedSubstituteFailsMatch(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("a"))
	mustAddRule(t, e, "a", "${nope}", 0)
	res, err := e.Match("x")
	if !errors.Is(err, ErrUnknownRule) {
		t.Fatalf("want ErrUnknownRule, got %v", err)
	}
	if !errors.Is(res.Err, ErrUnknownRule) {
		t.Fatalf("want Result.Err to be ErrUnknownRule, got %v", res.Err)
	}
	if res.Matched {
		t.Fatalf("want no match for an unresolved substitute, got %+v", res)
	}
}

func TestImplicitRootLongestAmongCandidates(t *testing.T) {
	defer setupTest(t)()
	e := New()
	mustAddRule(t, e, "short", "a", RootCandidate)
	mustAddRule(t, e, "long", "ab", RootCandidate)
	res, err := e.Match("ab")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Matched || res.Rule != "long" || res.Span.Len() != 2 {
		t.Fatalf("want rule 'long' matching length 2, got %+v", res)
	}
}

func TestNoRootConfigured(t *testing.T) {
	defer setupTest(t)()
	e := New()
	mustAddRule(t, e, "r", "a", 0) // not a root candidate
	if _, err := e.Match("a"); err != ErrNoRoot {
		t.Fatalf("want ErrNoRoot, got %v", err)
	}
}

func TestUpdateRuleReplacesInPlace(t *testing.T) {
	defer setupTest(t)()
	e := New(WithRoot("r"))
	mustAddRule(t, e, "r", "a", 0)
	res, err := e.Match("a")
	if err != nil || !res.Matched {
		t.Fatalf("expected initial match: %v, %+v", err, res)
	}
	if err := e.UpdateRule("r", "b", 0, Listeners{}); err != nil {
		t.Fatalf("UpdateRule: %v", err)
	}
	res, err = e.Match("a")
	if err != nil {
		t.Fatal(err)
	}
	if res.Matched {
		t.Fatalf("expected replaced rule to no longer match 'a', got %+v", res)
	}
}
