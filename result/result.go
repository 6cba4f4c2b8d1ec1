/*
Package result provides a value for the outcome of a computation that may fail.

Lookups in the style manifest return a Result, leaving it to the client to
either handle a miss or to insist on a hit:

	r := vars.Lookup("Theme", "accent")
	var v manifest.Var
	var err error
	switch m := r.Match(); m {
	case m.Ok(&v):
	    …
	case m.Err(&err):
	    …
	}

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package result

import "fmt"

// Result is the result of a computation that may fail.
type Result[T any] interface {
	Match() Matcher[T]
	Get() (T, error) // Go-style unpacking
	IsOk() bool      // did the computation succeed?
	OrPanic() T      // the value, or a panic carrying the error
	WithDefault(T) T // the value, or a default if the computation failed
	Error() error    // the error, or nil
}

type result[T any] struct {
	value T
	err   error
}

// Ok wraps a successfully computed value.
func Ok[T any](x T) Result[T] {
	return result[T]{value: x}
}

// Err wraps a failure. err must be non-nil.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic("result: Err called with nil error")
	}
	return result[T]{err: err}
}

// Of packs a Go-style (value, error) pair into a Result.
func Of[T any](x T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(x)
}

func (r result[T]) Match() Matcher[T] {
	return matcher[T]{r: &r} // matchers must be comparable for any T
}

func (r result[T]) Get() (T, error) {
	return r.value, r.err
}

func (r result[T]) IsOk() bool {
	return r.err == nil
}

func (r result[T]) Error() error {
	return r.err
}

func (r result[T]) WithDefault(def T) T {
	if r.err != nil {
		return def
	}
	return r.value
}

// OrPanic returns the value of r or panics with r's error. The panic value
// is the error itself, so recovering clients may inspect it with errors.Is.
func (r result[T]) OrPanic() T {
	if r.err != nil {
		panic(r.err)
	}
	return r.value
}

func (r result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("Err(%s)", r.err.Error())
	}
	return fmt.Sprintf("Ok(%v)", r.value)
}

// Map applies f to the value of r, if r is Ok. Errors pass through unchanged.
func Map[T, S any](r Result[T], f func(T) S) Result[S] {
	v, err := r.Get()
	if err != nil {
		return Err[S](err)
	}
	return Ok(f(v))
}

// AndThen chains a computation which may fail itself.
func AndThen[T, S any](r Result[T], f func(T) Result[S]) Result[S] {
	v, err := r.Get()
	if err != nil {
		return Err[S](err)
	}
	return f(v)
}

// --- Matching --------------------------------------------------------------

type Matcher[T any] interface {
	Ok(*T) Matcher[T]
	Err(*error) Matcher[T]
}

type matcher[T any] struct {
	r *result[T]
}

func (rm matcher[T]) Ok(v *T) Matcher[T] {
	if rm.r.err == nil {
		*v = rm.r.value
		return rm
	}
	return nil
}

func (rm matcher[T]) Err(err *error) Matcher[T] {
	if rm.r.err != nil {
		*err = rm.r.err
		return rm
	}
	return nil
}
