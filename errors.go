package asyncmap

import "errors"

const Namespace = "asyncmap"

var (
	ErrNilInput          = errors.New(Namespace + ": input sequence is nil")
	ErrNilTransform      = errors.New(Namespace + ": transform is nil")
	ErrInvalidLimit      = errors.New(Namespace + ": concurrency limit must be positive")
	ErrInvalidOption     = errors.New(Namespace + ": invalid option")
	ErrTransformPanicked = errors.New(Namespace + ": transform panicked")
)
