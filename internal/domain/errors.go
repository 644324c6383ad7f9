package domain

import "errors"

// ErrMissingInput means a required source file was absent at the start of a
// run. Nothing is written when a build fails with it.
var ErrMissingInput = errors.New("required input file is missing")
