// Package lfsrhash implements a 128-bit non-cryptographic digest built from two modular LFSRs
// over GF(251) and GF(241) run in lockstep, with fixed salting phases between absorption and
// extraction. It is not meant to resist an adversary.
//
// An Engine holds the whole hashing state. Blocks enter it through Absorb, salts through AddSalt
// and digest words leave it through Extract32, Extract64 and Extract128. Files are hashed in one
// of two layouts: SumChained (one engine, every block in order; the historical lfsr128sum format)
// or the XOR fold of independently hashed blocks computed by Digest (parallel, order independent).
package lfsrhash

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.
