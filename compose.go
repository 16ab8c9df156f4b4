package main

import (
	"errors"
	"fmt"
)

// FoldPerItem folds p through every pass in chain with a single traversal of
// each list. Every element goes through the whole chain before the next
// element is looked at. A statement omitted by one pass is not shown to the
// passes after it.
func FoldPerItem[T any](p Program[T], chain ...Folder[T]) Program[T] {
	out := Program[T]{
		Arguments:  make([]T, 0, len(p.Arguments)),
		Statements: make([]T, 0, len(p.Statements)),
	}
	for _, a := range p.Arguments {
		for _, f := range chain {
			a = f.FoldArgument(a)
		}
		out.Arguments = append(out.Arguments, a)
	}
statements:
	for _, s := range p.Statements {
		for _, f := range chain {
			var ok bool
			if s, ok = f.FoldStatement(s).Get(); !ok {
				continue statements
			}
		}
		out.Statements = append(out.Statements, s)
	}
	return out
}

// FoldPerPass folds p through each pass in chain in turn. Each pass
// traverses the whole program produced by the pass before it.
func FoldPerPass[T any](p Program[T], chain ...Folder[T]) Program[T] {
	if len(chain) == 0 {
		return FoldProgram[T](BaseFolder[T]{}, p)
	}
	for _, f := range chain {
		p = FoldProgram(f, p)
	}
	return p
}

// Strategy selects how a chain of passes is composed.
type Strategy string

const (
	// StrategyPerItem is FoldPerItem.
	StrategyPerItem Strategy = "iter"
	// StrategyPerPass is FoldPerPass.
	StrategyPerPass Strategy = "seq"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies lists every strategy, in the order they are reported.
var Strategies = []Strategy{StrategyPerItem, StrategyPerPass}

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPerItem, StrategyPerPass:
		return Strategy(s), nil
	case "per-item":
		return StrategyPerItem, nil
	case "per-pass":
		return StrategyPerPass, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Apply folds p through chain using strategy. It panics on an unknown
// strategy; use ParseStrategy to validate user input.
func Apply[T any](strategy Strategy, p Program[T], chain ...Folder[T]) Program[T] {
	switch strategy {
	case StrategyPerItem:
		return FoldPerItem(p, chain...)
	case StrategyPerPass:
		return FoldPerPass(p, chain...)
	}
	panic("unknown strategy " + string(strategy))
}
