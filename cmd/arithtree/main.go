package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"golang.org/x/term"

	"github.com/zephyrtronium/arithtree"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit status.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var (
		inname, verb, level         string
		nl, echo, tokens, dump, useBig bool
		strict                      bool
		prec, jobs                  int
	)
	fs := flag.NewFlagSet("arithtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	fs.StringVar(&verb, "fmt", "%g", "result formatting string")
	fs.StringVar(&level, "v", "warn", "log level: debug, info, warn, or error")
	fs.BoolVar(&nl, "n", false, "parse separate input lines as separate expressions")
	fs.BoolVar(&echo, "echo", false, "print parse trees")
	fs.BoolVar(&tokens, "tokens", false, "print tokens")
	fs.BoolVar(&dump, "dump", false, "print the structure of parse trees")
	fs.BoolVar(&useBig, "big", false, "evaluate with arbitrary precision")
	fs.BoolVar(&strict, "strict", false, "treat division by zero as an error")
	fs.IntVar(&prec, "p", 64, "precision of -big calculations in bits")
	fs.IntVar(&jobs, "j", runtime.GOMAXPROCS(0), "number of expressions to evaluate concurrently")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(stderr, "invalid log level %q\n", level)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
	if prec <= 0 || uint64(prec) > big.MaxPrec {
		logger.Error("precision out of range", slog.Int("prec", prec), slog.Uint64("max", big.MaxPrec))
		return 2
	}
	if jobs <= 0 {
		logger.Error("job count must be positive", slog.Int("jobs", jobs))
		return 2
	}

	opts := []arithtree.ContextOption{arithtree.Prec(uint(prec))}
	if strict {
		opts = append(opts, arithtree.Strict())
	}
	ev := evaluator{
		ctx: arithtree.NewContext(opts...),
		big: useBig,
		log: logger,
	}
	p := &printer{
		w:      stdout,
		verb:   verb,
		tokens: tokens,
		echo:   echo,
		dump:   dump,
		styled: isTerminal(stdout),
	}

	if inname == "" && fs.NArg() == 0 && isTerminal(stdin) {
		logger.Debug("starting interactive mode")
		interactive(ctx, stdin, stderr, ev, p)
		return 0
	}

	srcs, err := inputs(inname, fs.Args(), stdin, nl)
	if err != nil {
		logger.Error("reading input", slog.Any("err", err))
		return 1
	}
	logger.Info("evaluating", slog.Int("count", len(srcs)), slog.Int("jobs", jobs))
	code := 0
	for _, r := range evaluateAll(ctx, ev, srcs, jobs) {
		p.print(r)
		if r.err != nil {
			code = 1
		}
	}
	return code
}

// inputs collects the expressions to evaluate. Each argument is one
// expression. The input file, or stdin when there are no arguments and no
// file, is one expression, or one per non-blank line if nl is set.
func inputs(inname string, args []string, stdin io.Reader, nl bool) ([]string, error) {
	var srcs []string
	var in io.Reader
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	case inname == "-", len(args) == 0:
		in = stdin
	}
	if in != nil {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", inputName(inname), err)
		}
		if nl {
			for _, line := range strings.Split(string(b), "\n") {
				if strings.TrimSpace(line) != "" {
					srcs = append(srcs, line)
				}
			}
		} else {
			srcs = append(srcs, string(b))
		}
	}
	return append(srcs, args...), nil
}

func inputName(inname string) string {
	if inname == "" || inname == "-" {
		return "stdin"
	}
	return inname
}

// interactive evaluates one expression per line until EOF or cancellation.
// Cancellation returns immediately, even while waiting for a line.
func interactive(ctx context.Context, stdin io.Reader, prompt io.Writer, ev evaluator, p *printer) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	for {
		fmt.Fprint(prompt, "> ")
		var line string
		ok := false
		select {
		case <-ctx.Done():
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(prompt)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.print(ev.evaluate(line))
	}
}

// isTerminal reports whether v is a file connected to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
