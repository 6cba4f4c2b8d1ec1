/*
Package either provides a sum type of two alternatives.

Go has no native sum types. Either stands in for a value which is
either of type L or of type R:

	type Either a b = Left a | Right b

A typical use is an inline-style override, which clients may supply either as
a list of CSS declarations or as a pre-formatted style string.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package either

import "fmt"

// Either holds either a value of type L or a value of type R.
// The zero value is Left with the zero value of L.
type Either[L, R any] struct {
	left  L
	right R
	discr bool // true ⇒ right
}

// Left creates an Either holding the left alternative.
func Left[L, R any](l L) Either[L, R] {
	return Either[L, R]{left: l}
}

// Right creates an Either holding the right alternative.
func Right[L, R any](r R) Either[L, R] {
	return Either[L, R]{right: r, discr: true}
}

// IsLeft is a predicate for the left alternative.
func (e Either[L, R]) IsLeft() bool {
	return !e.discr
}

// IsRight is a predicate for the right alternative.
func (e Either[L, R]) IsRight() bool {
	return e.discr
}

func (e Either[L, R]) String() string {
	if e.discr {
		return fmt.Sprintf("Right(%v)", e.right)
	}
	return fmt.Sprintf("Left(%v)", e.left)
}

// Fold collapses an Either into a single value, applying onLeft or onRight.
func Fold[L, R, T any](e Either[L, R], onLeft func(L) T, onRight func(R) T) T {
	if e.discr {
		return onRight(e.right)
	}
	return onLeft(e.left)
}

// --- Matching --------------------------------------------------------------

// Match returns a matcher for pattern-style consumption:
//
//	switch m := e.Match(); m {
//	case m.Left(&decls):
//	    …
//	case m.Right(&text):
//	    …
//	}
func (e Either[L, R]) Match() Matcher[L, R] {
	return matcher[L, R]{e: &e}
}

type Matcher[L, R any] interface {
	Left(*L) Matcher[L, R]
	Right(*R) Matcher[L, R]
}

type matcher[L, R any] struct {
	e *Either[L, R]
}

func (em matcher[L, R]) Left(l *L) Matcher[L, R] {
	if !em.e.discr {
		*l = em.e.left
		return em
	}
	return nil
}

func (em matcher[L, R]) Right(r *R) Matcher[L, R] {
	if em.e.discr {
		*r = em.e.right
		return em
	}
	return nil
}
