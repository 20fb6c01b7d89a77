package lfsrhash

import "fmt"

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// The modular shift register underneath lfsrhash: two 4-lane LFSRs over GF(p) sharing one
// 8-lane state vector and one feedback constant, advanced together by a single 16-bit input.

// Lanes is the state (or feedback constant) of a paired register. Lanes 0 to 3 belong to the
// lower LFSR, lanes 4 to 7 to the upper one.
type Lanes [8]uint16

// Register is a paired LFSR over GF(p). Only its state changes after construction.
type Register struct {
	state        Lanes
	k            Lanes
	p            uint16
	invK0, invK4 uint16
}

// NewRegister returns a Register over GF(p) with feedback constant k, reset to its unit state.
// It panics if p is not a prime below 256 or if k[0] or k[4] has no inverse mod p.
func NewRegister(p uint16, k Lanes) *Register {
	if p < 2 || p > 255 || !prime(p) {
		panic(fmt.Sprintf("lfsrhash: modulus %d is not a prime below 256", p))
	}
	r := &Register{k: k, p: p}
	r.invK0, r.invK4 = inverse(k[0], p), inverse(k[4], p)
	if r.invK0 == 0 || r.invK4 == 0 {
		panic(fmt.Sprintf("lfsrhash: feedback %v is not invertible mod %d", k, p))
	}
	r.Reset()
	return r
}

// Modulus returns p.
func (r *Register) Modulus() uint16 { return r.p }

// Reset restores the unit state.
func (r *Register) Reset() { r.state = Lanes{1, 0, 0, 0, 1, 0, 0, 0} }

// State returns a copy of the current lanes.
func (r *Register) State() Lanes { return r.state }

// SetState replaces the lanes, reducing each one mod p.
func (r *Register) SetState(s Lanes) {
	for i := range s {
		s[i] %= r.p
	}
	r.state = s
}

// Step advances both halves of the register once, feeding in to lanes 0 and 4.
func (r *Register) Step(in uint16) {
	s, k, p := &r.state, &r.k, r.p
	v3, v7 := s[3], s[7]
	/* Descending, so every lane still reads its predecessor's old value. */
	s[7] = (s[6] + v7*k[7]) % p
	s[3] = (s[2] + v3*k[3]) % p
	s[6] = (s[5] + v7*k[6]) % p
	s[2] = (s[1] + v3*k[2]) % p
	s[5] = (s[4] + v7*k[5]) % p
	s[1] = (s[0] + v3*k[1]) % p
	/* The input sum wraps at 16 bits before the reduction. */
	s[4] = (in + v7*k[4]) % p
	s[0] = (in + v3*k[0]) % p
}

// Back undoes one Step taken with the same input. The inverse is exact as long as
// in+(p-1)*k[0] and in+(p-1)*k[4] do not overflow 16 bits in Step.
func (r *Register) Back(in uint16) {
	s, k, p := &r.state, &r.k, uint32(r.p)
	x := uint32(in) % p
	v3 := uint32(r.invK0) * ((uint32(s[0]) + p - x) % p) % p
	v7 := uint32(r.invK4) * ((uint32(s[4]) + p - x) % p) % p
	for i := 0; i < 3; i++ {
		s[i] = uint16((uint32(s[i+1]) + p*p - v3*uint32(k[i+1])) % p)
		s[i+4] = uint16((uint32(s[i+5]) + p*p - v7*uint32(k[i+5])) % p)
	}
	s[3], s[7] = uint16(v3), uint16(v7)
}

func prime(p uint16) bool {
	for d := uint16(2); d*d <= p; d++ {
		if p%d == 0 {
			return false
		}
	}
	return true
}

// inverse returns x^-1 mod p, or 0 if there is none.
func inverse(x, p uint16) uint16 {
	x %= p
	for i := uint32(1); i < uint32(p); i++ {
		if uint32(x)*i%uint32(p) == 1 {
			return uint16(i)
		}
	}
	return 0
}
