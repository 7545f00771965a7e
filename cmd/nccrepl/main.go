/*
Package main implements nccrepl, an interactive shell for experimenting
with NCC grammars: add rules, set a root, and match input against it. A
match is reported as the matched rule's name and span; no AST is printed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package main

import (
	"flag"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/raslanove/ncc"
	"github.com/raslanove/ncc/ast"
)

func tracer() tracing.Trace {
	return tracing.Select("ncc.repl")
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}

func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to nccrepl")
	tracer().Infof("Quit with <ctrl>D")

	repl, err := readline.New("ncc> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	shell := &shell{engine: ncc.New(), repl: repl, colorize: true}
	shell.run()
}

// shell is the REPL's interpreter object: one engine, reconfigured live by
// :rule / :root commands, plus whatever is typed as bare input to match.
type shell struct {
	engine   *ncc.Engine
	repl     *readline.Instance
	colorize bool
}

func (s *shell) run() {
	for {
		line, err := s.repl.Readline()
		if err != nil { // io.EOF on <ctrl>D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := s.eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// eval dispatches one REPL line. Commands start with ':'; anything else is
// matched against the current root.
func (s *shell) eval(line string) (quit bool) {
	switch {
	case line == ":quit" || line == ":q":
		return true
	case strings.HasPrefix(line, ":rule "):
		s.cmdRule(strings.TrimPrefix(line, ":rule "))
	case strings.HasPrefix(line, ":tree-rule "):
		s.cmdTreeRule(strings.TrimPrefix(line, ":tree-rule "))
	case strings.HasPrefix(line, ":root "):
		s.engine.SetRoot(strings.TrimSpace(strings.TrimPrefix(line, ":root ")))
	case line == ":rules":
		for _, name := range s.engine.RuleNames() {
			pterm.Println(name)
		}
	case line == ":help":
		printHelp()
	default:
		s.cmdMatch(line)
	}
	return false
}

// cmdRule handles ":rule <name> = <body>", registering a plain, non-AST
// rule with no listeners.
func (s *shell) cmdRule(rest string) {
	name, body, ok := splitRuleDecl(rest)
	if !ok {
		pterm.Error.Println("usage: :rule <name> = <body>")
		return
	}
	if err := s.engine.AddRule(name, body, 0, ncc.Listeners{}); err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tracer().Infof("rule %q added", name)
}

// cmdTreeRule handles ":tree-rule <name> = <body>", registering a
// tree-producing rule using the ast package's standard listener trio.
func (s *shell) cmdTreeRule(rest string) {
	name, body, ok := splitRuleDecl(rest)
	if !ok {
		pterm.Error.Println("usage: :tree-rule <name> = <body>")
		return
	}
	if err := s.engine.AddRule(name, body, ncc.RootCandidate, ast.Listeners()); err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	tracer().Infof("tree-producing rule %q added", name)
}

func splitRuleDecl(rest string) (name, body string, ok bool) {
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// cmdMatch runs the current root against line and prints the matched rule's
// name and span. It prints no AST, also for a tree-producing root.
func (s *shell) cmdMatch(line string) {
	result, err := s.engine.Match(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if !result.Matched {
		pterm.Error.Println("no match")
		return
	}
	pterm.Info.Printfln("matched rule %q, span %s", result.Rule, result.Span)
}

func printHelp() {
	pterm.Println(":rule <name> = <body>       add a plain rule")
	pterm.Println(":tree-rule <name> = <body>  add a tree-producing root-candidate rule")
	pterm.Println(":root <name>                pin the root rule")
	pterm.Println(":rules                      list registered rule names")
	pterm.Println(":quit                       leave nccrepl")
	pterm.Println("anything else               matched against the current root")
}
