package domain

import "errors"

// ErrTableFull indicates a registration that would push the logical buffer or
// a single string's length past the 32-bit bound a token can express. This is
// a fatal build error: a silently wrapped offset would desynchronize every
// token emitted afterwards.
var ErrTableFull = errors.New("encrypted table exceeds the 32-bit token bound")
