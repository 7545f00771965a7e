/*
Package ncc implements NCC, a runtime-configurable grammar engine.

A caller adds named rules whose bodies are written in a small regex-like
meta-language (see compile.go for the reserved characters and constructs),
then calls Match against a designated root rule, or lets the engine pick
the longest match among every rule flagged as a root candidate. Matching is
longest-match with backtracking; listeners attached to a rule may veto a
candidate match, which makes the matcher try an alternative.

Package structure:

■ ncc (this package): the meta-language compiler, the compiled node graph,
the rule registry, and the matcher itself.

■ ast: the tree produced by rules whose listeners request tree construction,
plus a renderer for printing it to a terminal.

■ symtable: a scope/symbol table usable by listeners that need
declare-before-use semantics.

■ cmd/nccrepl: an interactive shell for adding rules and matching input.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package ncc
