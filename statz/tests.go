package main

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/p7r0x7/lfsrhash"
	"github.com/p7r0x7/lfsrhash/internal/selfcheck"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = 5e4

// meanBias is the average distance, in percent of the ideal, of each digest bit's one-count from
// half the digests.
func meanBias(digests []lfsrhash.Sum128) float64 {
	var tally [lfsrhash.Size * 8]int
	for _, d := range digests {
		for i := 0; i < 64; i++ {
			tally[i] += int(d.Lo >> i & 1)
			tally[64+i] += int(d.Hi >> i & 1)
		}
	}
	half, total := len(digests)/2, 0
	for _, v := range tally {
		if v -= half; v < 0 {
			total -= v
		} else {
			total += v
		}
	}
	return float64(total) / float64(len(tally)) / float64(half) * 100
}

func qualityTests() {
	e, rng := lfsrhash.NewEngine(), rand.New(rand.NewSource(1))
	integers, random := make([]lfsrhash.Sum128, 0, ints), make([]lfsrhash.Sum128, 0, ints)
	block, rBytes := make([]byte, 4), make([]byte, 1024)
	for i := uint32(ints); i > 0; i-- {
		binary.BigEndian.PutUint32(block, i)
		integers = append(integers, lfsrhash.Hash128(e, block, lfsrhash.S0))
		rng.Read(rBytes)
		random = append(random, lfsrhash.Hash128(e, rBytes, lfsrhash.S0))
	}
	fmt.Printf("Integer input Monobit test:  %5.3f%%\n", meanBias(integers))
	fmt.Printf("Random input Monobit test:   %5.3f%%\n", meanBias(random))

	for width := 1; width <= 3; width++ {
		limit := 0
		if width == 3 {
			limit = 1 << 16
		}
		fmt.Println("Hash32 " + selfcheck.Coverage32(width, limit).String())
		fmt.Println("Hash64 " + selfcheck.Coverage64(width, limit).String())
	}
}
