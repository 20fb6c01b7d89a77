// Package selfcheck measures lfsrhash the way its authors sanity-check a build: median
// throughput over a large block, and how many distinct digests small input domains produce.
package selfcheck

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/p7r0x7/lfsrhash"
	"golang.org/x/sys/cpu"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// BlockSize is the zero block the coverage domains are written into.
const BlockSize = 64 * 4

// Report is the outcome of Throughput. Speeds are in MB/s.
type Report struct {
	Size             int
	Runs             int
	Median, Min, Max float64
}

// Throughput hashes a zeroed size-byte buffer as one block runs times and reports the spread.
func Throughput(size, runs int) Report {
	msg, e := make([]byte, size), lfsrhash.NewEngine()
	speeds := make([]float64, 0, runs)
	for i := 0; i < runs; i++ {
		t := time.Now()
		lfsrhash.Hash128(e, msg, lfsrhash.Salt{Rounds: 1, Noise0: 2, Noise1: 3})
		if d := time.Since(t); d > 0 {
			speeds = append(speeds, float64(size)/d.Seconds()/1e6)
		}
	}
	r := Report{Size: size, Runs: len(speeds)}
	if len(speeds) > 0 {
		sort.Float64s(speeds)
		r.Median, r.Min, r.Max = speeds[len(speeds)/2], speeds[0], speeds[len(speeds)-1]
	}
	return r
}

func (r Report) String() string {
	return fmt.Sprintf("128-bit LFSR hash median performance: %.2f MB/s (min %.2f, max %.2f)\n"+
		"  %d runs over %s on %s/%s [%s]",
		r.Median, r.Min, r.Max, r.Runs, humanize.IBytes(uint64(r.Size)),
		runtime.GOOS, runtime.GOARCH, Features())
}

// Features lists the SIMD extensions of this CPU relevant to 16-bit lane arithmetic.
func Features() string {
	var f []string
	switch {
	case cpu.X86.HasAVX2:
		f = append(f, "avx2")
		fallthrough
	case cpu.X86.HasSSE41:
		f = append(f, "sse4.1")
	}
	if cpu.ARM64.HasASIMD {
		f = append(f, "asimd")
	}
	if len(f) == 0 {
		return "generic"
	}
	return strings.Join(f, " ")
}

// Coverage counts distinct digests over an input domain.
type Coverage struct {
	Width    int /* bytes varied at the front of the block */
	Inputs   int
	Distinct int
}

// Ratio is Distinct/Inputs.
func (c Coverage) Ratio() float64 {
	if c.Inputs == 0 {
		return 0
	}
	return float64(c.Distinct) / float64(c.Inputs)
}

func (c Coverage) String() string {
	return fmt.Sprintf("%d-byte prefixes: %s distinct of %s, coverage: %.4f%%",
		c.Width, humanize.Comma(int64(c.Distinct)), humanize.Comma(int64(c.Inputs)), 100*c.Ratio())
}

// Coverage32 hashes a zero block whose first width bytes take limit distinct values (every value
// when limit is 0 or covers the domain) and counts the distinct 32-bit digests.
func Coverage32(width, limit int) Coverage {
	set := map[uint32]struct{}{}
	n := walk(width, limit, func(e *lfsrhash.Engine, blk []byte, seed lfsrhash.Salt) {
		set[lfsrhash.Hash32(e, blk, seed)] = struct{}{}
	})
	return Coverage{Width: width, Inputs: n, Distinct: len(set)}
}

// Coverage64 is Coverage32 for 64-bit digests.
func Coverage64(width, limit int) Coverage {
	set := map[uint64]struct{}{}
	n := walk(width, limit, func(e *lfsrhash.Engine, blk []byte, seed lfsrhash.Salt) {
		set[lfsrhash.Hash64(e, blk, seed)] = struct{}{}
	})
	return Coverage{Width: width, Inputs: n, Distinct: len(set)}
}

// walk visits distinct prefixes of width bytes (1 to 3), seeding each hash with {width, width,
// width}. Sampling multiplies by an odd constant, which is a bijection mod 2^(8*width).
func walk(width, limit int, visit func(*lfsrhash.Engine, []byte, lfsrhash.Salt)) int {
	if width < 1 || width > 3 {
		panic(fmt.Sprintf("selfcheck: prefix width %d out of range [1,3]", width))
	}
	domain := 1 << (8 * width)
	step := 1
	if limit > 0 && limit < domain {
		domain, step = limit, 0x1e3779b1
	}
	mask := 1<<(8*width) - 1
	e, blk := lfsrhash.NewEngine(), make([]byte, BlockSize)
	seed := lfsrhash.Salt{Rounds: width, Noise0: uint16(width), Noise1: uint16(width)}
	for i := 0; i < domain; i++ {
		x := i * step & mask
		for j := 0; j < width; j++ {
			blk[j] = byte(x >> (8 * j))
		}
		visit(e, blk, seed)
	}
	return domain
}
