package ncc

// MatchLen is the result of matching a node (and everything chained after
// it) against input starting at some offset: the number of bytes consumed,
// or Reject if the node did not match.
//
// The original C implementation of NCC alternates between -1 and 0 for "no
// match" depending on the node type; we standardize on a single sentinel,
// the same way the teacher module uses small signed-int sentinels for its
// own parser actions (see ShiftAction/AcceptAction in an LR action table).
type MatchLen int

// Reject is returned by Node.Match when a node does not match at the given
// offset. It is never a valid length.
const Reject MatchLen = -1

// ok reports whether a MatchLen represents a successful (possibly
// zero-length) match.
func (m MatchLen) ok() bool { return m != Reject }
