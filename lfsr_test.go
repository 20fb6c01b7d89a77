package lfsrhash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_UnitState(t *testing.T) {
	r := NewRegister(251, K251)
	assert.Equal(t, Lanes{1, 0, 0, 0, 1, 0, 0, 0}, r.State())

	r.Step(1234)
	r.Reset()
	assert.Equal(t, Lanes{1, 0, 0, 0, 1, 0, 0, 0}, r.State())
}

func TestRegister_StepByHand(t *testing.T) {
	r := NewRegister(251, K251)
	r.Step(5)
	require.Equal(t, Lanes{5, 1, 0, 0, 5, 1, 0, 0}, r.State())
	r.Step(0)
	require.Equal(t, Lanes{0, 5, 1, 0, 0, 5, 1, 0}, r.State())
	r.Step(0)
	require.Equal(t, Lanes{0, 0, 5, 1, 0, 0, 5, 1}, r.State())
	/* Lanes 3 and 7 now feed back through K251. */
	r.Step(0)
	require.Equal(t, Lanes{7, 1, 6, 5, 4, 1, 3, 7}, r.State())
}

func TestRegister_InputWrapsBeforeReduction(t *testing.T) {
	r := NewRegister(251, K251)
	r.SetState(Lanes{0, 0, 0, 1, 0, 0, 0, 0})
	r.Step(0xffff)
	st := r.State()
	assert.Equal(t, uint16(6), st[0], "(0xffff + 7) wraps to 6")
	assert.Equal(t, uint16(0xffff%251), st[4])
}

func TestRegister_LanesStayResidues(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, r := range []*Register{NewRegister(251, K251), NewRegister(241, K241)} {
		for i := 0; i < 1<<14; i++ {
			r.Step(uint16(rng.Uint32()))
			for lane, v := range r.State() {
				require.Less(t, v, r.Modulus(), "lane %d after step %d", lane, i)
			}
		}
	}
}

func TestRegister_BackUndoesStep(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, r := range []*Register{NewRegister(251, K251), NewRegister(241, K241)} {
		for i := 0; i < 4096; i++ {
			var st Lanes
			for j := range st {
				st[j] = uint16(rng.Intn(int(r.Modulus())))
			}
			in := uint16(rng.Intn(60000))
			r.SetState(st)
			r.Step(in)
			r.Back(in)
			require.Equal(t, st, r.State(), "p=%d input=%d", r.Modulus(), in)
		}
	}
}

func TestRegister_StepReadsEveryLane(t *testing.T) {
	base := NewRegister(241, K241)
	base.SetState(Lanes{3, 1, 4, 1, 5, 9, 2, 6})
	for lane := 0; lane < 8; lane++ {
		other := *base
		st := other.State()
		st[lane] = (st[lane] + 1) % 241
		other.SetState(st)

		a, b := *base, other
		for i := 0; i < 8; i++ {
			a.Step(0)
			b.Step(0)
		}
		assert.NotEqual(t, a.State(), b.State(), "lane %d has no influence", lane)
	}
}

func TestNewRegister_Panics(t *testing.T) {
	assert.Panics(t, func() { NewRegister(250, K251) })
	assert.Panics(t, func() { NewRegister(257, K251) })
	assert.Panics(t, func() { NewRegister(251, Lanes{0, 1, 1, 1, 1, 1, 1, 1}) })
	assert.Panics(t, func() { NewRegister(241, Lanes{1, 1, 1, 1, 241, 1, 1, 1}) })
	assert.NotPanics(t, func() { NewRegister(241, K241) })
}
