// Package symtable provides a small scope-tree symbol table, adapted from
// the host module's runtime symbol table for use by a declare-before-use
// listener: a grammar can push a scope on entering a block, define a tag
// each time an identifier declaration rule matches, and resolve a tag each
// time an identifier-use rule matches, vetoing the match if the identifier
// was never declared in any enclosing scope.
package symtable

import "fmt"

// Tag is a declared identifier. Kind is caller-defined (e.g. "var", "func")
// and carries no meaning to the table itself.
type Tag struct {
	Name string
	ID   int
	Kind string
}

func (t *Tag) String() string {
	return fmt.Sprintf("<tag %q[%d]:%s>", t.Name, t.ID, t.Kind)
}

// Table stores tags by name (map-like semantics), scoped to a single Scope.
type Table struct {
	entries map[string]*Tag
}

func newTable() *Table {
	return &Table{entries: make(map[string]*Tag)}
}

// Resolve looks up a tag by name in this table only (no parent lookup).
func (t *Table) Resolve(name string) (*Tag, bool) {
	tag, ok := t.entries[name]
	return tag, ok
}

// Define inserts a new tag, replacing (and returning) any tag previously
// defined under the same name in this table.
func (t *Table) Define(tag *Tag) (old *Tag) {
	old = t.entries[tag.Name]
	t.entries[tag.Name] = tag
	return old
}

// Remove deletes a tag by name, used by listeners that must undo a Define
// when the rule that performed it is later backtracked over.
func (t *Table) Remove(name string) {
	delete(t.entries, name)
}

// Size reports how many tags this table holds.
func (t *Table) Size() int { return len(t.entries) }

// Scope is a named lexical scope, linking back to its parent to form a
// tree; declaration lookups walk outward from the current scope to the
// root.
type Scope struct {
	Name   string
	Parent *Scope
	table  *Table
}

func newScope(name string, parent *Scope) *Scope {
	return &Scope{Name: name, Parent: parent, table: newTable()}
}

func (s *Scope) String() string { return fmt.Sprintf("<scope %s>", s.Name) }

// Define declares name in this scope's own table. id and kind are stored on
// the resulting Tag for the caller's own use (e.g. an emitted memory slot
// number, or "var"/"func").
func (s *Scope) Define(name string, id int, kind string) (tag *Tag, shadowed *Tag) {
	tag = &Tag{Name: name, ID: id, Kind: kind}
	shadowed = s.table.Define(tag)
	return tag, shadowed
}

// Remove deletes name from this scope's own table, used to undo a Define
// that a listener is backtracking over.
func (s *Scope) Remove(name string) {
	s.table.Remove(name)
}

// Resolve looks up name in this scope, then each enclosing scope in turn.
// Returns the tag and the scope it was found in, or (nil, nil).
func (s *Scope) Resolve(name string) (*Tag, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if tag, ok := cur.table.Resolve(name); ok {
			return tag, cur
		}
	}
	return nil, nil
}

// Tree is a stack of scopes, pushed and popped as a listener descends into
// and climbs back out of nested blocks.
type Tree struct {
	base *Scope
	tos  *Scope
}

// NewTree creates a tree with a single, already-current global scope.
func NewTree() *Tree {
	global := newScope("global", nil)
	return &Tree{base: global, tos: global}
}

// Current returns the innermost (top-of-stack) scope.
func (t *Tree) Current() *Scope { return t.tos }

// Global returns the outermost scope.
func (t *Tree) Global() *Scope { return t.base }

// Push opens a new scope nested under the current one and makes it current.
func (t *Tree) Push(name string) *Scope {
	t.tos = newScope(name, t.tos)
	return t.tos
}

// Pop closes the current scope, making its parent current again. Popping
// the global scope panics: it is a programming error in the listener, not a
// recoverable grammar condition.
func (t *Tree) Pop() *Scope {
	popped := t.tos
	if popped.Parent == nil {
		panic("symtable: attempt to pop the global scope")
	}
	t.tos = popped.Parent
	return popped
}
