package lfsrhash

import (
	"io"

	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The chained layout is the historical lfsr128sum digest: one engine absorbs every block of the
// message in order, so it needs almost no memory but cannot be split across goroutines. The
// message length must be known up front because it salts the engine before the first block.

const (
	// BlockSize is the block length of the chained layout in bytes.
	BlockSize = 64 * 4
	chunkSize = BlockSize << 12 /* read granularity only; never changes the digest */
)

// SumChained hashes exactly size bytes from r into e using the chained layout. A read failure is
// returned as a *ReadError; a stream shorter or longer than size yields ErrSizeMismatch.
func SumChained(e *Engine, r io.Reader, size int64) (Sum128, error) {
	if size == 0 {
		return Sum128{}, ErrEmptyInput
	} else if size < 0 {
		return Sum128{}, errors.Wrapf(ErrSizeMismatch, "negative size %d", size)
	}
	head, even := LengthSalt(size), size&1 == 0

	e.Reset()
	e.AddSalt(head) /* Guards against collisions through the zero padding below. */
	e.AddSalt(S1)
	e.AddSalt(S0)
	e.AddSalt(pick(even, S0, S4))

	buf, read := make([]byte, chunkSize), int64(0)
	for {
		n, err := io.ReadFull(r, buf)
		if read += int64(n); read > size {
			return Sum128{}, errors.Wrapf(ErrSizeMismatch, "read %d bytes, want %d", read, size)
		}
		full := n / BlockSize
		for i := 0; i < full; i++ {
			e.AbsorbBlock((*[BlockSize]byte)(buf[i*BlockSize:]))
		}
		if n%BlockSize > 0 {
			tail := (*[BlockSize]byte)(buf[full*BlockSize:])
			clear(tail[n%BlockSize:])
			e.AbsorbBlock(tail)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		} else if err != nil {
			return Sum128{}, &ReadError{Offset: read, err: err}
		}
	}
	if read != size {
		return Sum128{}, errors.Wrapf(ErrSizeMismatch, "read %d bytes, want %d", read, size)
	}

	var w [4]uint32
	for i, salts := range chainSchedule(head, even) {
		for _, s := range salts {
			e.AddSalt(s)
		}
		w[i] = e.Extract32()
	}
	/* The first word lands in the low half of Hi, as lfsr128sum always printed it. */
	return Sum128{Hi: uint64(w[0]) | uint64(w[1])<<32, Lo: uint64(w[2]) | uint64(w[3])<<32}, nil
}

// ChainSchedule lists, in order, the salts SumChained applies after the last block of a size-byte
// message. The schedule depends on the parity of size and on size mod 31.
func ChainSchedule(size int64) []Salt {
	var out []Salt
	for _, salts := range chainSchedule(LengthSalt(size), size&1 == 0) {
		out = append(out, salts...)
	}
	return out
}

// chainSchedule groups the final salts by the word extracted after them.
func chainSchedule(head Salt, even bool) [4][]Salt {
	return [4][]Salt{
		{S0, S1, head.Swapped(), pick(even, S1, S0)},
		{pick(even, S3, S2), pick(even, S4, S2)},
		{pick(even, S2, S3), pick(even, S3, S1)},
		{pick(even, S4, S2), pick(even, S2, S0)},
	}
}
