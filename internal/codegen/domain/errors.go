// Package domain defines the artifact generation error set.
package domain

import "errors"

var (
	// ErrInvalidPackageName indicates an output package name that is not a
	// valid lower-case Go package identifier.
	ErrInvalidPackageName = errors.New("invalid output package name")

	// ErrNilTable indicates generation was attempted without a completed
	// encrypted table.
	ErrNilTable = errors.New("nil encrypted table")

	// ErrNoFragments indicates generation was attempted without scattered
	// key fragments.
	ErrNoFragments = errors.New("no key fragments")
)
