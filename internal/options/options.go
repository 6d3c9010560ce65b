// Package options implements the generic functional options shared by the
// builder, encoder and converter configurations.
package options

import "go.uber.org/multierr"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New creates an option from a function that may fail.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts in order and stops at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// ApplyAll applies every option and returns all failures combined, so a
// caller can report every invalid setting at once.
func ApplyAll[T any](target T, opts ...Option[T]) error {
	var err error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		err = multierr.Append(err, opt.apply(target))
	}

	return err
}
