package main

import (
	"errors"
	"fmt"
)

// Deduplicator drops every statement equal to one it has already kept.
// Arguments are left alone.
type Deduplicator[T comparable] struct {
	BaseFolder[T]
	seen map[T]struct{}
}

func NewDeduplicator[T comparable]() *Deduplicator[T] {
	return &Deduplicator[T]{seen: make(map[T]struct{})}
}

func (d *Deduplicator[T]) FoldStatement(s T) Fold[T] {
	if _, ok := d.seen[s]; ok {
		return Omit[T]()
	}
	d.seen[s] = struct{}{}
	return Keep(s)
}

// Len returns the number of distinct statements seen so far.
func (d *Deduplicator[T]) Len() int {
	return len(d.seen)
}

// DefaultSpins is how much busy work DummyOptimizer does per statement.
const DefaultSpins = 100

// DummyOptimizer keeps everything. It burns Spins loop iterations per
// statement so that chaining it has a measurable cost.
type DummyOptimizer[T any] struct {
	BaseFolder[T]
	Spins int
}

func NewDummyOptimizer[T any]() *DummyOptimizer[T] {
	return &DummyOptimizer[T]{Spins: DefaultSpins}
}

func (d *DummyOptimizer[T]) FoldStatement(s T) Fold[T] {
	for i := 0; i < d.Spins; i++ {
		// nothing
	}
	return Keep(s)
}

// Pass names accepted by NewPass.
const (
	PassDedup = "dedup"
	PassDummy = "dummy"
)

var ErrUnknownPass = errors.New("unknown pass")

// PassOptions tunes passes built by NewPass.
type PassOptions struct {
	// Spins overrides DummyOptimizer's busy work. Zero means DefaultSpins.
	Spins int
}

// NewPass builds a fresh pass by name.
func NewPass[T comparable](name string, opts PassOptions) (Folder[T], error) {
	switch name {
	case PassDedup:
		return NewDeduplicator[T](), nil
	case PassDummy:
		d := NewDummyOptimizer[T]()
		if opts.Spins > 0 {
			d.Spins = opts.Spins
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPass, name)
	}
}

// NewChain builds fresh passes for names, in order.
func NewChain[T comparable](names []string, opts PassOptions) ([]Folder[T], error) {
	chain := make([]Folder[T], 0, len(names))
	for _, name := range names {
		f, err := NewPass[T](name, opts)
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}
