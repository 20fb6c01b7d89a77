package selfcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverage32_OneByte(t *testing.T) {
	c := Coverage32(1, 0)
	require.Equal(t, 256, c.Inputs)
	assert.GreaterOrEqual(t, c.Ratio(), 0.99, c.String())
}

func TestCoverage64_OneByte(t *testing.T) {
	c := Coverage64(1, 0)
	require.Equal(t, 256, c.Inputs)
	assert.GreaterOrEqual(t, c.Ratio(), 0.99, c.String())
}

func TestCoverage32_TwoBytes(t *testing.T) {
	if testing.Short() {
		t.Skip("walks 65536 inputs")
	}
	c := Coverage32(2, 0)
	require.Equal(t, 1<<16, c.Inputs)
	assert.GreaterOrEqual(t, c.Ratio(), 0.99, c.String())
}

func TestCoverage32_ThreeBytesSampled(t *testing.T) {
	c := Coverage32(3, 1<<13)
	require.Equal(t, 1<<13, c.Inputs)
	assert.GreaterOrEqual(t, c.Ratio(), 0.99, c.String())
}

func TestCoverage_BadWidth(t *testing.T) {
	assert.Panics(t, func() { Coverage32(0, 0) })
	assert.Panics(t, func() { Coverage64(4, 0) })
	assert.Zero(t, Coverage{}.Ratio())
}

func TestThroughput_Floor(t *testing.T) {
	if testing.Short() {
		t.Skip("hashes 4 MiB several times")
	}
	r := Throughput(4<<20, 5)
	require.Equal(t, 5, r.Runs)
	assert.LessOrEqual(t, r.Min, r.Median)
	assert.LessOrEqual(t, r.Median, r.Max)
	/* Generous floor. */
	assert.Greater(t, r.Median, 1.0, r.String())
	assert.Contains(t, r.String(), "4.0 MiB")
}

func TestFeatures(t *testing.T) {
	assert.NotEmpty(t, Features())
}
