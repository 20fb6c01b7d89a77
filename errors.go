package lfsrhash

import (
	"fmt"

	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var (
	// ErrEmptyInput is returned for zero-length messages; no digest is defined for them.
	ErrEmptyInput = errors.New("lfsrhash: empty input")

	// ErrSizeMismatch is returned when a stream ends before, or runs past, its declared size.
	ErrSizeMismatch = errors.New("lfsrhash: stream length differs from declared size")
)

// OpenError reports a file that could not be opened for reading.
type OpenError struct {
	Path string
	err  error
}

func (e *OpenError) Error() string { return fmt.Sprintf("open %s: %v", e.Path, e.err) }

func (e *OpenError) Unwrap() error { return e.err }

// ReadError reports an I/O failure partway through a message. It is never an end of file.
type ReadError struct {
	Path   string
	Offset int64
	err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s at byte %d: %v", e.Path, e.Offset, e.err)
}

func (e *ReadError) Unwrap() error { return e.err }
