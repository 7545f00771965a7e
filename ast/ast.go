// Package ast provides the tree representation a grammar can request NCC
// build for it, plus the three listener callbacks (create on match start,
// fill in on match end, delete on reject) that wire rule matches into that
// tree.
package ast

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/raslanove/ncc"
)

// Node is one entry in the parse tree produced for a tree-producing rule: a
// rule whose Listeners are exactly the trio returned by Listeners. Children
// appear in source order; Value holds the leaf text when a node has no
// AST-producing children, and is empty otherwise.
type Node struct {
	RuleName    string
	MatchedText string
	Value       string
	Span        ncc.Span
	Children    []*Node
}

// Listeners returns the standard AST-building callback trio for a
// tree-producing rule. Non-AST rules (whitespace, grouping helpers) should
// simply be given ncc.Listeners{}.
func Listeners() ncc.Listeners {
	return ncc.Listeners{
		OnMatchStart: onMatchStart,
		OnMatchEnd:   onMatchEnd,
		OnReject:     onReject,
	}
}

// onMatchStart allocates a fresh node and stashes it in data.Node; it is
// torn down by onReject if the candidate match does not survive.
func onMatchStart(data *ncc.MatchingData) {
	data.Node = &Node{RuleName: data.Rule.Name}
}

// onMatchEnd fills in the node's span and text, promotes any variables
// collected from nested AST-producing matches into children, and never
// vetoes — AST construction by itself is not a gate.
func onMatchEnd(data *ncc.MatchingData) bool {
	node := data.Node.(*Node)
	node.Span = ncc.Span{data.Offset, data.Offset + data.Length}
	node.MatchedText = data.Text[data.Offset : data.Offset+data.Length]

	for {
		v, ok := data.PopVariable()
		if !ok {
			break
		}
		if child, ok := v.Value.(*Node); ok {
			node.Children = append([]*Node{child}, node.Children...)
		}
	}
	if len(node.Children) == 0 {
		node.Value = node.MatchedText
	}
	return true
}

// onReject tears the node down. There is nothing to free explicitly — Go's
// garbage collector reclaims it — but the rule this node belongs to may
// carry PushVariable, in which case ncc has already popped the pending
// variable off the enclosing frame by the time this fires.
func onReject(data *ncc.MatchingData) {
	data.Node = nil
}

// TreeToString renders an AST as an indented, optionally ANSI-colorized
// multi-line string, using pterm's tree renderer (a LeveledList fed to
// NewTreeFromLeveledList). If rendering fails, the error text is returned in
// angle brackets instead.
func TreeToString(root *Node, colorize bool) string {
	if root == nil {
		return "<nil>"
	}
	if !colorize {
		pterm.DisableColor()
		defer pterm.EnableColor()
	}
	ll := leveledList(root, pterm.LeveledList{}, 0)
	tree := pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll))
	out, err := tree.Srender()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return out
}

func leveledList(n *Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	label := n.RuleName
	if n.Value != "" {
		label = n.RuleName + ": " + strings.TrimSpace(n.Value)
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: label})
	for _, c := range n.Children {
		ll = leveledList(c, ll, level+1)
	}
	return ll
}

// DeleteAST exists for API parity with the engine's conceptual
// create/destroy symmetry (see SPEC_FULL.md §6's delete_ast). Go's garbage
// collector reclaims the tree once it is unreferenced; this is a no-op.
func DeleteAST(*Node) {}
