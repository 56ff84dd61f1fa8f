// Command nightjar is the interpreter's entry point: `nightjar <script>`
// runs a file, bare `nightjar` on a terminal starts a REPL, and bare
// `nightjar` with stdin piped from a file behaves like file mode so
// scripts can be tested non-interactively.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/nightjar-lang/nightjar/internal/astprint"
	"github.com/nightjar-lang/nightjar/internal/config"
	"github.com/nightjar-lang/nightjar/internal/evaluator"
	"github.com/nightjar-lang/nightjar/internal/lexer"
	"github.com/nightjar-lang/nightjar/internal/parser"
	"github.com/nightjar-lang/nightjar/internal/pipeline"
	"github.com/nightjar-lang/nightjar/internal/replstore"
	"github.com/nightjar-lang/nightjar/internal/resolver"
)

// exDataErr matches sysexits.h's EX_DATAERR: input data was incorrect.
const exDataErr = 65

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(
		lexer.Processor{},
		parser.Processor{},
		resolver.Processor{},
		evaluator.Processor{},
	)
}

func main() {
	switch len(os.Args) {
	case 1:
		if isatty.IsTerminal(os.Stdin.Fd()) {
			runREPL()
			return
		}
		runStdin()
	case 2:
		switch os.Args[1] {
		case "-v", "-version", "--version":
			fmt.Println("nightjar " + config.Version)
			return
		}
		runFile(os.Args[1])
	default:
		fmt.Fprintln(os.Stderr, "Usage: nightjar [script]")
		os.Exit(1)
	}
}

// colorizePreference loads the REPL config just to read its
// ColorizeErrors setting; a malformed or missing config file is not
// fatal for file/stdin mode, so any load error just falls back to the
// default.
func colorizePreference() bool {
	cfg, err := config.LoadREPLConfig()
	if err != nil {
		return config.DefaultREPLConfig().ColorizeErrors
	}
	return cfg.ColorizeErrors
}

func runFile(path string) {
	if !config.HasSourceExt(path) {
		fmt.Fprintf(os.Stderr, "Error: %s is not a recognized nightjar source file (expected %s, or one of %s)\n",
			path, config.SourceFileExt, strings.Join(config.SourceFileExtensions, ", "))
		os.Exit(1)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if !run(path, string(src), evaluator.New(), colorizePreference()) {
		os.Exit(exDataErr)
	}
}

func runStdin() {
	src, err := readAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if !run("<stdin>", src, evaluator.New(), colorizePreference()) {
		os.Exit(exDataErr)
	}
}

func readAll(f *os.File) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024), 1<<20)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	return b.String(), scanner.Err()
}

// run executes one program against a persistent evaluator and reports
// its diagnostics. It returns false if any stage produced an error.
func run(path, src string, eval *evaluator.Evaluator, colorize bool) bool {
	ctx := pipeline.NewContext(path, src, eval)
	ctx.Out = os.Stdout
	ctx = newPipeline().Run(ctx)

	for _, e := range ctx.Errors {
		fmt.Fprintln(os.Stderr, formatError(e.Error(), colorize))
	}
	return ctx.Success()
}

// formatError wraps a diagnostic in ANSI red when colorize is set, per
// REPLConfig.ColorizeErrors.
func formatError(msg string, colorize bool) string {
	if !colorize {
		return msg
	}
	return "\x1b[31m" + msg + "\x1b[0m"
}

func runREPL() {
	cfg, err := config.LoadREPLConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
	}

	var store *replstore.Store
	if cfg.PersistHistory {
		store, err = replstore.Open(cfg.HistoryDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: history disabled: %s\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	eval := evaluator.New()
	scanner := bufio.NewScanner(os.Stdin)

	lineNo := 0
	fmt.Print(cfg.Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		lineNo++

		if handled := handleREPLCommand(line); handled {
			fmt.Print(cfg.Prompt)
			continue
		}

		run(fmt.Sprintf("<repl:%d>", lineNo), line, eval, cfg.ColorizeErrors)

		if store != nil && strings.TrimSpace(line) != "" {
			if err := store.Append(context.Background(), line, time.Now().Unix()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %s\n", err)
			}
		}

		fmt.Print(cfg.Prompt)
	}
}

// handleREPLCommand recognizes the REPL's debug commands, which are
// not part of the language itself: `:ast <source>` parses source as a
// sequence of statements and prints each one's parsed form, and `:quit`
// exits.
func handleREPLCommand(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == ":quit":
		os.Exit(0)
	case strings.HasPrefix(trimmed, ":ast "):
		src := strings.TrimPrefix(trimmed, ":ast ")
		printAST(src)
		return true
	}
	return false
}

func printAST(src string) {
	l := lexer.New(src)
	tokens, errs := l.ScanTokens()
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return
	}
	p := parser.New(tokens)
	stmts := p.Parse()
	if !p.Success() {
		for _, e := range p.Errors() {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return
	}
	for _, s := range stmts {
		fmt.Println(astprint.Stmt(s))
	}
}
