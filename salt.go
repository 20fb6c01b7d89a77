package lfsrhash

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Salt is a whitening phase: Rounds steps of the mod-251 register fed Noise0 and Rounds steps of
// the mod-241 register fed Noise1.
type Salt struct {
	Rounds         int
	Noise0, Noise1 uint16
}

const (
	saturationRounds   = 4     /* one full turn of a 4-lane half */
	longDistanceRounds = 6 * 4 /* enough to decorrelate extracted words */
)

// The five named salts are part of the digest format; changing any of them yields a different
// hash family.
var (
	S0 = Salt{7, 2, 3}
	S1 = Salt{6, 4, 7}
	S2 = Salt{31, 8, 11}
	S3 = Salt{29, 9, 5}
	S4 = Salt{37, 2, 13}
)

// Saturating reports whether s turns every lane over at least once.
func (s Salt) Saturating() bool { return s.Rounds >= saturationRounds }

// LongDistance reports whether s is long enough to separate two extractions.
func (s Salt) LongDistance() bool { return s.Rounds >= longDistanceRounds }

// Swapped returns s with its noise words exchanged.
func (s Salt) Swapped() Salt { return Salt{s.Rounds, s.Noise1, s.Noise0} }

// LengthSalt derives the salt that ties a digest to its message length n, so that messages
// differing only in trailing zero padding do not collide. n ≡ 0 (mod 31) yields zero rounds.
func LengthSalt(n int64) Salt {
	return Salt{int(uint64(n) % 31), uint16(n), uint16(3 * n)}
}

// IndexSalt derives the per-block salt of the XOR-fold layout from a block index.
func IndexSalt(dex uint64) Salt {
	return Salt{saturationRounds + int(dex%29), uint16(dex), uint16(dex >> 16)}
}

// AddSalt runs s through the engine. Both registers take s.Rounds steps.
func (e *Engine) AddSalt(s Salt) {
	for i := s.Rounds; i > 0; i-- {
		e.g251.Step(s.Noise0)
		e.g241.Step(s.Noise1)
	}
}

func pick(even bool, a, b Salt) Salt {
	if even {
		return a
	}
	return b
}
