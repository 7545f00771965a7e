package ncc

import "fmt"

// ErrUnknownRule is returned (wrapped) by Match when the root set with
// SetRoot or WithRoot, or a Substitute node, names a rule that is not
// registered with the engine.
var ErrUnknownRule = fmt.Errorf("unknown rule")

// ErrNoRoot is returned by Match when no root has been set and no rule
// carries the RootCandidate flag.
var ErrNoRoot = fmt.Errorf("no root rule set and no root-candidate rules registered")

// CompileError reports a problem found while compiling a rule body into a
// node graph. Offset is a byte offset into the whole body string passed to
// AddRule/UpdateRule, also for problems inside a `{...}` group, and Rule is
// the name passed along with it.
type CompileError struct {
	Rule   string
	Offset int
	Msg    string
}

func (e *CompileError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("ncc: compile error at offset %d: %s", e.Offset, e.Msg)
	}
	return fmt.Sprintf("ncc: compile error in rule %q at offset %d: %s", e.Rule, e.Offset, e.Msg)
}
