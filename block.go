package lfsrhash

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Single-block hashing: the engine is reset, seeded, fed one block and saturated before the
// digest words are extracted. The block may be any non-empty length.

// Hash32 returns the 32-bit digest of block under seed.
func Hash32(e *Engine, block []byte, seed Salt) uint32 {
	e.prepare(block, seed)
	return e.Extract32()
}

// Hash64 returns the 64-bit digest of block under seed.
func Hash64(e *Engine, block []byte, seed Salt) uint64 {
	e.prepare(block, seed)
	return e.Extract64()
}

// Hash128 returns the 128-bit digest of block under seed.
func Hash128(e *Engine, block []byte, seed Salt) Sum128 {
	e.prepare(block, seed)
	return e.Extract128()
}

func (e *Engine) prepare(block []byte, seed Salt) {
	e.Reset()
	e.AddSalt(seed)
	e.Absorb(block)
	e.AddSalt(S0)
	e.AddSalt(S1)
}
