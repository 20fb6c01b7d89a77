package lfsrhash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed steps a fresh register pair through explicit input sequences.
func feed(in251, in241 []uint16) (Lanes, Lanes) {
	a, b := NewRegister(251, K251), NewRegister(241, K241)
	for _, x := range in251 {
		a.Step(x)
	}
	for _, x := range in241 {
		b.Step(x)
	}
	return a.State(), b.State()
}

func TestEngine_AbsorbWindows(t *testing.T) {
	tests := []struct {
		name         string
		block        []byte
		in251, in241 []uint16
	}{
		{"one byte", []byte{0xab}, []uint16{0xabab}, []uint16{0xabab}},
		{"two bytes", []byte{0x01, 0x02}, []uint16{0x0201, 0x0101}, []uint16{0x0201, 0x0101}},
		{
			"four bytes", []byte{0x01, 0x02, 0x03, 0x04},
			[]uint16{0x0201, 0x0403, 0x0302, 0x0302, 0x0302, 0x0101},
			[]uint16{0x0403, 0x0201, 0x0302, 0x0302, 0x0302, 0x0101},
		},
		{
			"six bytes", []byte{1, 2, 3, 4, 5, 6},
			[]uint16{0x0201, 0x0403, 0x0605, 0x0302, 0x0302, 0x0302, 0x0101},
			[]uint16{0x0605, 0x0403, 0x0201, 0x0504, 0x0504, 0x0504, 0x0101},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			e.Absorb(tt.block)
			want251, want241 := feed(tt.in251, tt.in241)
			got251, got241 := e.State()
			assert.Equal(t, want251, got251)
			assert.Equal(t, want241, got241)
		})
	}
}

func TestEngine_AbsorbEmptyPanics(t *testing.T) {
	assert.Panics(t, func() { NewEngine().Absorb(nil) })
}

func TestEngine_AddSaltLockstep(t *testing.T) {
	e := NewEngine()
	e.AddSalt(S2)
	in251, in241 := make([]uint16, S2.Rounds), make([]uint16, S2.Rounds)
	for i := range in251 {
		in251[i], in241[i] = S2.Noise0, S2.Noise1
	}
	want251, want241 := feed(in251, in241)
	got251, got241 := e.State()
	assert.Equal(t, want251, got251)
	assert.Equal(t, want241, got241)

	before251, before241 := e.State()
	e.AddSalt(Salt{})
	after251, after241 := e.State()
	assert.Equal(t, before251, after251, "zero rounds is a no-op")
	assert.Equal(t, before241, after241)
}

func TestEngine_Extract32Fold(t *testing.T) {
	e := NewEngine()
	e.g251.SetState(Lanes{1, 2, 3, 4, 16, 32, 64, 128})
	e.g241.SetState(Lanes{200, 0, 7, 0, 8, 9, 0, 240})
	/* byte j = a[j]^a[j+4]^b[j]^b[j+4] */
	want := uint32(1^16^200^8)<<24 | uint32(2^32^0^9)<<16 | uint32(3^64^7^0)<<8 | uint32(4^128^0^240)
	require.Equal(t, want, e.Extract32())

	a, b := e.State()
	assert.Equal(t, want, e.Extract32(), "extraction is a pure read")
	a2, b2 := e.State()
	assert.Equal(t, a, a2)
	assert.Equal(t, b, b2)
}

func TestEngine_ExtractWordOrder(t *testing.T) {
	e, ref := NewEngine(), NewEngine()
	e.AddSalt(S1)
	ref.AddSalt(S1)

	got := e.Extract128()
	var w [4]uint32
	w[0] = ref.Extract32()
	ref.AddSalt(S2)
	w[1] = ref.Extract32()
	ref.AddSalt(S3)
	w[2] = ref.Extract32()
	ref.AddSalt(S4)
	w[3] = ref.Extract32()
	assert.Equal(t, Sum128{uint64(w[0])<<32 | uint64(w[1]), uint64(w[2])<<32 | uint64(w[3])}, got)

	e.Reset()
	e.AddSalt(S1)
	assert.Equal(t, uint64(w[0])<<32|uint64(w[1]), e.Extract64())
}

func TestSalts(t *testing.T) {
	assert.Equal(t, Salt{7, 2, 3}, S0)
	assert.Equal(t, Salt{6, 4, 7}, S1)
	assert.Equal(t, Salt{31, 8, 11}, S2)
	assert.Equal(t, Salt{29, 9, 5}, S3)
	assert.Equal(t, Salt{37, 2, 13}, S4)
	for _, s := range []Salt{S0, S1} {
		assert.True(t, s.Saturating(), "%v", s)
		assert.False(t, s.LongDistance(), "%v", s)
	}
	for _, s := range []Salt{S2, S3, S4} {
		assert.True(t, s.LongDistance(), "%v", s)
	}

	assert.Equal(t, Salt{10, 10, 30}, LengthSalt(10))
	assert.Equal(t, Salt{0, 31, 93}, LengthSalt(31))
	assert.Equal(t, Salt{2, 0, 0}, LengthSalt(1<<16))
	assert.Equal(t, Salt{10, 30, 10}, LengthSalt(10).Swapped())
	assert.Equal(t, Salt{4, 0, 0}, IndexSalt(0))
	assert.Equal(t, Salt{5, 1, 0}, IndexSalt(1))
	assert.Equal(t, Salt{4 + int((1<<16)%29), 0, 1}, IndexSalt(1<<16))
}

func TestHash_Deterministic(t *testing.T) {
	block := []byte("the quick brown fox jumps over the lazy dog")
	e := NewEngine()
	a := Hash128(e, block, S0)
	e.AddSalt(S4) /* leftover state must not leak into the next hash */
	assert.Equal(t, a, Hash128(e, block, S0))
	assert.Equal(t, a, Hash128(NewEngine(), block, S0))
	assert.NotEqual(t, a, Hash128(e, block, S1), "seed matters")
	assert.Equal(t, uint32(a.Hi>>32), Hash32(e, block, S0))
	assert.Equal(t, a.Hi, Hash64(e, block, S0))
}

func TestHash_LengthSensitive(t *testing.T) {
	e := NewEngine()
	assert.NotEqual(t, Hash128(e, []byte{0}, S0), Hash128(e, []byte{0, 0}, S0))
	assert.NotEqual(t, Hash128(e, []byte{0, 0}, S0), Hash128(e, []byte{0, 0, 0}, S0))
}
