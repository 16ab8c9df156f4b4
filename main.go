package main

import "fmt"

// Program is a minimal program container: an ordered list of arguments
// followed by an ordered list of statements.
type Program[T any] struct {
	Arguments  []T
	Statements []T
}

// Fold is the outcome of folding a single statement. A statement is either
// kept (possibly rewritten) or omitted from the output program.
//
// The zero Fold is omitted.
type Fold[T any] struct {
	value T
	kept  bool
}

// Keep returns a Fold that keeps v in the output.
func Keep[T any](v T) Fold[T] {
	return Fold[T]{value: v, kept: true}
}

// Omit returns a Fold that drops the statement.
func Omit[T any]() Fold[T] {
	return Fold[T]{}
}

// Get returns the kept value. ok is false if the statement was omitted.
func (f Fold[T]) Get() (v T, ok bool) {
	return f.value, f.kept
}

func (f Fold[T]) Omitted() bool {
	return !f.kept
}

func (f Fold[T]) String() string {
	if !f.kept {
		return "(omit)"
	}
	return "(keep " + fmt.Sprint(f.value) + ")"
}

// Folder is a pass over a Program. Each hook sees a single element.
//
// Embed BaseFolder to get the default hooks and override only the ones a
// pass cares about.
type Folder[T any] interface {
	FoldArgument(a T) T
	FoldStatement(s T) Fold[T]
}

// BaseFolder provides the default hooks: arguments pass through unchanged
// and every statement is kept unchanged.
type BaseFolder[T any] struct{}

func (BaseFolder[T]) FoldArgument(a T) T {
	return a
}

func (BaseFolder[T]) FoldStatement(s T) Fold[T] {
	return Keep(s)
}

// FoldProgram runs f over every argument and statement of p, in order, and
// returns the resulting program. Omitted statements are dropped. p is not
// modified.
func FoldProgram[T any](f Folder[T], p Program[T]) Program[T] {
	out := Program[T]{
		Arguments:  make([]T, 0, len(p.Arguments)),
		Statements: make([]T, 0, len(p.Statements)),
	}
	for _, a := range p.Arguments {
		out.Arguments = append(out.Arguments, f.FoldArgument(a))
	}
	for _, s := range p.Statements {
		if v, ok := f.FoldStatement(s).Get(); ok {
			out.Statements = append(out.Statements, v)
		}
	}
	return out
}
