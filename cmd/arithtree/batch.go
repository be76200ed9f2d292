package main

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/arithtree"
)

// result is the outcome of evaluating one expression.
type result struct {
	src  string
	toks []arithtree.Token
	tree *arithtree.Node
	// val is the result without -big, bval with it.
	val  float64
	bval *big.Float
	err  error
}

type evaluator struct {
	ctx *arithtree.Context
	big bool
	log *slog.Logger
}

func (ev evaluator) evaluate(src string) result {
	start := time.Now()
	r := result{src: src}
	r.toks, r.err = arithtree.Tokenize(src)
	if r.err != nil {
		ev.log.Debug("tokenize failed", slog.String("src", src), slog.Any("err", r.err))
		return r
	}
	r.tree, r.err = arithtree.Build(r.toks)
	if r.err != nil {
		ev.log.Debug("build failed", slog.String("src", src), slog.Any("err", r.err))
		return r
	}
	if ev.big {
		r.bval, r.err = ev.ctx.EvalBig(r.tree)
	} else {
		r.val, r.err = ev.ctx.Eval(r.tree)
	}
	ev.log.Debug("evaluated",
		slog.String("src", src),
		slog.Int("tokens", len(r.toks)),
		slog.Duration("took", time.Since(start)),
		slog.Any("err", r.err),
	)
	return r
}

// evaluateAll evaluates srcs with at most jobs running at once. Results are in
// the same order as srcs. Expressions not yet started when ctx is canceled get
// ctx's error.
func evaluateAll(ctx context.Context, ev evaluator, srcs []string, jobs int) []result {
	results := make([]result, len(srcs))
	var g errgroup.Group
	g.SetLimit(jobs)
	for i, src := range srcs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = result{src: src, err: err}
				return nil
			}
			results[i] = ev.evaluate(src)
			return nil
		})
	}
	// Every job returns nil.
	_ = g.Wait()
	return results
}
