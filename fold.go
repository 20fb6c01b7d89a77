package lfsrhash

import (
	"encoding/binary"
	"io"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The folded layout hashes every block on its own engine, salted with the block's index, and XORs
// the 128-bit sub-digests together. XOR makes the fold independent of completion order, so blocks
// are spread over worker goroutines. The message length is only needed at finalisation, which is
// what lets Digest stream.

// FoldBlockSize is the block length of the folded layout in bytes.
const FoldBlockSize = 16 << 10

type foldBlock = [FoldBlockSize]byte

var (
	blockPool  = sync.Pool{New: func() interface{} { return new(foldBlock) }}
	enginePool = sync.Pool{New: func() interface{} { return NewEngine() }}
)

// Digest computes the folded layout over everything written to it. It is an io.Writer; Write
// never fails. The zero value is ready to use with one worker per CPU. A Digest is not safe for
// concurrent use.
type Digest struct {
	dex     uint64
	length  int64
	carry   []byte
	workers int
	group   *errgroup.Group
	mapping sync.Mutex
	fold    Sum128
}

// NewDigest returns a Digest hashing on up to workers goroutines; workers < 1 means one per CPU.
func NewDigest(workers int) *Digest {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Digest{workers: workers, carry: make([]byte, 0, FoldBlockSize)}
}

// BlockSize returns FoldBlockSize.
func (d *Digest) BlockSize() int { return FoldBlockSize }

// Size returns the digest length in bytes.
func (d *Digest) Size() int { return Size }

// Len returns the number of bytes written since the last Reset.
func (d *Digest) Len() int64 { return d.length }

func (d *Digest) Write(buf []byte) (int, error) {
	count := len(buf)
	d.length += int64(count)
	if d.carry == nil {
		d.carry = make([]byte, 0, FoldBlockSize)
	}
	if len(d.carry) > 0 {
		n := copy(d.carry[len(d.carry):FoldBlockSize], buf)
		d.carry, buf = d.carry[:len(d.carry)+n], buf[n:]
		if len(d.carry) < FoldBlockSize {
			return count, nil
		}
		d.consume(d.carry)
		d.carry = d.carry[:0]
	}
	for len(buf) >= FoldBlockSize {
		d.consume(buf[:FoldBlockSize])
		buf = buf[FoldBlockSize:]
	}
	d.carry = append(d.carry, buf...)
	return count, nil
}

// consume copies one full block and hands it to a worker.
func (d *Digest) consume(b []byte) {
	if d.group == nil {
		if d.workers < 1 {
			d.workers = runtime.NumCPU()
		}
		d.group = new(errgroup.Group)
		d.group.SetLimit(d.workers)
	}
	blk, dex := blockPool.Get().(*foldBlock), d.dex
	copy(blk[:], b)
	d.dex++
	d.group.Go(func() error {
		sum := sumBlock(dex, blk)
		blockPool.Put(blk)
		d.mapping.Lock()
		d.fold = d.fold.Xor(sum)
		d.mapping.Unlock()
		return nil
	})
}

// Sum128 waits for outstanding blocks and returns the digest of everything written so far. It
// does not change the running state, so more data may be written afterwards.
func (d *Digest) Sum128() (Sum128, error) {
	if d.group != nil {
		if err := d.group.Wait(); err != nil {
			return Sum128{}, err
		}
		d.group = nil
	}
	if d.length == 0 {
		return Sum128{}, ErrEmptyInput
	}
	fold := d.fold
	if len(d.carry) > 0 {
		var tail foldBlock /* zero padded */
		copy(tail[:], d.carry)
		fold = fold.Xor(sumBlock(d.dex, &tail))
	}
	return finalizeFold(fold, d.length), nil
}

// Reset discards everything written.
func (d *Digest) Reset() {
	if d.group != nil {
		_ = d.group.Wait()
		d.group = nil
	}
	d.dex, d.length, d.carry, d.fold = 0, 0, d.carry[:0], Sum128{}
}

// SumFolded hashes r to its end with the folded layout on up to workers goroutines.
func SumFolded(r io.Reader, workers int) (Sum128, error) {
	d := NewDigest(workers)
	if n, err := io.Copy(d, r); err != nil {
		d.Reset()
		return Sum128{}, &ReadError{Offset: n, err: errors.WithStack(err)}
	}
	return d.Sum128()
}

// FoldSum128 returns the sub-digest of block number dex in the folded layout. XOR-ing the
// sub-digests of all blocks, in any order, gives the value FinalizeFold expects.
func FoldSum128(dex uint64, block *[FoldBlockSize]byte) Sum128 { return sumBlock(dex, block) }

// FinalizeFold turns the XOR of all sub-digests of an n-byte message into its digest.
func FinalizeFold(fold Sum128, n int64) Sum128 { return finalizeFold(fold, n) }

func sumBlock(dex uint64, blk *foldBlock) Sum128 {
	e := enginePool.Get().(*Engine)
	defer enginePool.Put(e)
	e.Reset()
	e.AddSalt(IndexSalt(dex))
	e.AddSalt(S1)
	e.Absorb(blk[:])
	e.AddSalt(S0)
	e.AddSalt(S1)
	return e.Extract128()
}

func finalizeFold(fold Sum128, n int64) Sum128 {
	e := enginePool.Get().(*Engine)
	defer enginePool.Put(e)
	head := LengthSalt(n)
	e.Reset()
	e.AddSalt(head)
	e.AddSalt(S1)
	var tail [32]byte
	binary.BigEndian.PutUint64(tail[0:], fold.Hi)
	binary.BigEndian.PutUint64(tail[8:], fold.Lo)
	binary.LittleEndian.PutUint64(tail[16:], uint64(n))
	e.Absorb(tail[:])
	e.AddSalt(S0)
	e.AddSalt(head.Swapped())
	e.AddSalt(pick(n&1 == 0, S1, S0))
	return e.Extract128()
}
