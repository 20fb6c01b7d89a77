package lfsrhash

import "encoding/binary"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The engine is the whole mutable state of an lfsrhash computation: one register mod 251 and one
// mod 241, always advanced the same number of times. An Engine is owned by one computation at a
// time; concurrent hashing needs one Engine per goroutine.

// Feedback constants of the two registers. Part of the digest format.
var (
	K251 = Lanes{7, 1, 6, 0, 4, 1, 3, 2}
	K241 = Lanes{13, 2, 5, 10, 7, 0, 10, 1}
)

// Engine is a pair of registers run in lockstep.
type Engine struct {
	g251, g241 Register
}

// NewEngine returns a reset Engine.
func NewEngine() *Engine {
	return &Engine{g251: *NewRegister(251, K251), g241: *NewRegister(241, K241)}
}

// Reset puts both registers back to their unit state.
func (e *Engine) Reset() {
	e.g251.Reset()
	e.g241.Reset()
}

// State returns the lanes of the mod-251 and mod-241 registers.
func (e *Engine) State() (Lanes, Lanes) { return e.g251.State(), e.g241.State() }

// Absorb feeds one block into the engine. The mod-251 register reads little-endian words from
// the front of the block while the mod-241 register reads them mirrored from the back; the words
// at offsets 1 and len-3 are then fed three more times each, and finally block[0] doubled into
// both bytes goes to both registers. It panics on an empty block.
func (e *Engine) Absorb(block []byte) {
	n := len(block)
	if n == 0 {
		panic("lfsrhash: Absorb: empty block")
	}
	for i := 0; i < n>>1; i++ {
		e.g251.Step(binary.LittleEndian.Uint16(block[i<<1:]))
		e.g241.Step(binary.LittleEndian.Uint16(block[n-2-i<<1:]))
	}
	if n > 2 {
		lo, hi := binary.LittleEndian.Uint16(block[1:]), binary.LittleEndian.Uint16(block[n-3:])
		for i := 3; i > 0; i-- {
			e.g251.Step(lo)
			e.g241.Step(hi)
		}
	}
	x := uint16(block[0]) | uint16(block[0])<<8
	e.g251.Step(x)
	e.g241.Step(x)
}

// AbsorbBlock is Absorb for the fixed-size blocks of the chained layout.
func (e *Engine) AbsorbBlock(block *[BlockSize]byte) { e.Absorb(block[:]) }

// Extract32 folds the current state into 32 bits without changing it. Byte j (most significant
// first) is the XOR of lanes j and j+4 of both registers.
func (e *Engine) Extract32() uint32 {
	a, b := &e.g251.state, &e.g241.state
	return uint32(a[0]^a[4]^b[0]^b[4])<<24 |
		uint32(a[1]^a[5]^b[1]^b[5])<<16 |
		uint32(a[2]^a[6]^b[2]^b[6])<<8 |
		uint32(a[3]^a[7]^b[3]^b[7])
}

// Extract64 returns two extracted words separated by S2, first word most significant.
func (e *Engine) Extract64() uint64 {
	hi := e.Extract32()
	e.AddSalt(S2)
	return uint64(hi)<<32 | uint64(e.Extract32())
}

// Extract128 returns four extracted words separated by S2, S3 and S4, first word most
// significant.
func (e *Engine) Extract128() Sum128 {
	var w [4]uint32
	for i, s := range [4]Salt{{}, S2, S3, S4} {
		e.AddSalt(s)
		w[i] = e.Extract32()
	}
	return Sum128{Hi: uint64(w[0])<<32 | uint64(w[1]), Lo: uint64(w[2])<<32 | uint64(w[3])}
}
