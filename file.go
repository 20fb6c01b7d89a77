package lfsrhash

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The file driver: opens one file, learns its length and routes it through a layout. The two
// layouts are not bit-compatible; Chained reproduces the digests lfsr128sum has always printed.

// Strategy selects the layout a file is hashed with.
type Strategy int

const (
	Chained Strategy = iota
	Folded
)

func (s Strategy) String() string {
	switch s {
	case Chained:
		return "chain"
	case Folded:
		return "fold"
	default:
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// ParseStrategy accepts the names printed by Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "chain", "chained":
		return Chained, nil
	case "fold", "folded":
		return Folded, nil
	}
	return 0, errors.Errorf("lfsrhash: unknown strategy %q (want chain or fold)", name)
}

// FileDigest is the digest of one named file.
type FileDigest struct {
	Path string
	Size int64
	Sum  Sum128
}

// String renders the lfsr128sum output line without its newline.
func (f FileDigest) String() string { return f.Sum.String() + "\t" + f.Path }

type options struct {
	strategy Strategy
	workers  int
	engine   *Engine
}

// Option configures SumFile and SumStream.
type Option func(*options)

// WithStrategy selects the layout; the default is Chained.
func WithStrategy(s Strategy) Option { return func(o *options) { o.strategy = s } }

// WithWorkers bounds the goroutines of the Folded layout.
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithEngine lends an engine to the Chained layout instead of allocating one.
func WithEngine(e *Engine) Option { return func(o *options) { o.engine = e } }

func collect(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.engine == nil {
		o.engine = NewEngine()
	}
	return o
}

// SumFile hashes the file at path on fs. Files that are not regular, or report a size of 0 as
// procfs entries do, are read as streams.
func SumFile(fs afero.Fs, path string, opts ...Option) (FileDigest, error) {
	f, err := fs.Open(path)
	if err != nil {
		return FileDigest{}, &OpenError{Path: path, err: err}
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return FileDigest{}, &OpenError{Path: path, err: err}
	} else if info.IsDir() {
		return FileDigest{}, &OpenError{Path: path, err: errors.New("is a directory")}
	}
	if !info.Mode().IsRegular() || info.Size() == 0 {
		return SumStream(f, path, opts...)
	}
	return sum(f, path, info.Size(), collect(opts))
}

// SumStream hashes r to its end under the name path. Chained needs the length first, so the
// stream is buffered in memory for that layout.
func SumStream(r io.Reader, path string, opts ...Option) (FileDigest, error) {
	o := collect(opts)
	if o.strategy == Folded {
		return sum(r, path, -1, o)
	}
	msg, err := io.ReadAll(r)
	if err != nil {
		return FileDigest{}, &ReadError{Path: path, Offset: int64(len(msg)), err: err}
	}
	return sum(bytes.NewReader(msg), path, int64(len(msg)), o)
}

// sum runs one layout; size < 0 means unknown, which only Folded supports.
func sum(r io.Reader, path string, size int64, o options) (FileDigest, error) {
	var (
		s   Sum128
		err error
	)
	switch o.strategy {
	case Chained:
		s, err = SumChained(o.engine, r, size)
	case Folded:
		d := NewDigest(o.workers)
		var n int64
		if n, err = io.Copy(d, r); err != nil {
			d.Reset()
			err = &ReadError{Offset: n, err: err}
		} else if size >= 0 && n != size {
			err = errors.Wrapf(ErrSizeMismatch, "read %d bytes, want %d", n, size)
		} else {
			s, err = d.Sum128()
			size = n
		}
	default:
		err = errors.Errorf("lfsrhash: unknown strategy %d", int(o.strategy))
	}
	if re := (*ReadError)(nil); errors.As(err, &re) {
		re.Path = path
		return FileDigest{}, err
	} else if err != nil {
		return FileDigest{}, errors.WithMessage(err, path)
	}
	return FileDigest{Path: path, Size: size, Sum: s}, nil
}

// IsNotExist reports whether err comes from a missing file.
func IsNotExist(err error) bool { return errors.Is(err, os.ErrNotExist) }
