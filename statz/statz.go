package main

import (
	"bytes"
	. "fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dterei/gotsc"
	"github.com/minio/highwayhash"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/lfsrhash"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var sizes = [...]int{64, 512 << 10, 64 << 20, 1 << 30}
var msg, calltime = []byte(nil), gotsc.TSCOverhead()

func BenchmarkChained(b *testing.B) {
	e, r := lfsrhash.NewEngine(), bytes.NewReader(msg)
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		r.Reset(msg)
		_, _ = lfsrhash.SumChained(e, r, int64(len(msg)))
	}
}

func BenchmarkFolded(b *testing.B) {
	d := lfsrhash.NewDigest(runtime.NumCPU())
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		d.Write(msg)
		_, _ = d.Sum128()
		d.Reset()
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		sha256.Sum256(msg)
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		blake3.Sum256(msg)
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxh3.Hash128(msg)
	}
}

func BenchmarkXXHash(b *testing.B) {
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		xxhash.Sum64(msg)
	}
}

func BenchmarkHighwayHash(b *testing.B) {
	key := make([]byte, highwayhash.Size)
	b.SetBytes(int64(len(msg)))
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		highwayhash.Sum128(msg, key)
	}
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(sizes)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range sizes {
		msg = make([]byte, v)

		totalHz, polls, mut, done := uint64(0), uint64(0), &sync.Mutex{}, make(chan struct{})
		if calltime > 0 {
			go func() {
				for {
					select {
					case <-done:
						return
					default:
					}
					tsc1 := gotsc.BenchStart()
					time.Sleep(time.Millisecond)
					tsc2 := gotsc.BenchEnd()

					mut.Lock()
					totalHz += tsc2 - tsc1 - calltime
					polls++
					mut.Unlock()

					time.Sleep(time.Millisecond * 9)
				}
			}()
		}
		r := testing.Benchmark(alg)
		close(done)
		mut.Lock()
		totalHz *= 1000

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		if polls > 0 {
			speeds[i] = float64(totalHz) / float64(polls) / throughputs[i]
		}
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
		mut.Unlock()
	}

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

func fmtFloats(f ...float64) string {
	var str, style string
	for _, v := range f {
		switch whole := float64(int64(v)) == v; {
		case v > 1e8 || (v < 1e-6 && !whole):
			style = "%8.3g"
		case v <= 1e1 && !whole:
			style = "%8.6f"
		case v <= 1e2 && !whole:
			style = "%8.5f"
		case v <= 1e3 && !whole:
			style = "%8.4f"
		case v <= 1e4 && !whole:
			style = "%8.3f"
		case v <= 1e5 && !whole:
			style = "%8.2f"
		case v <= 1e6 && !whole:
			style = "%8.1f"
		default:
			style = "%8.f"
		}
		str += "  " + Sprintf(style, v)
	}
	return str
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	qualityTests()
	Println(" ============================================= ")
	Println("           64B      512K       64M       1G")

	Println("github.com/p7r0x7/lfsrhash (chain)")
	benchAlg(BenchmarkChained)

	Println("github.com/p7r0x7/lfsrhash (fold)")
	benchAlg(BenchmarkFolded)

	Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkSHA256)

	Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	Println("github.com/zeebo/xxh3")
	benchAlg(BenchmarkXXH3)

	Println("github.com/cespare/xxhash/v2")
	benchAlg(BenchmarkXXHash)

	Println("github.com/minio/highwayhash")
	benchAlg(BenchmarkHighwayHash)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
