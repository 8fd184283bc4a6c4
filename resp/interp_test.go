package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestWrapDegreesRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		phase := rapid.Float64Range(-1e6, 1e6).Draw(t, "phase")
		w := wrapDegrees(phase)
		assert.GreaterOrEqual(t, w, -180.0)
		assert.LessOrEqual(t, w, 180.0)
	})
}

func TestWrapDegreesCongruentModulo360(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		phase := rapid.Float64Range(-1e6, 1e6).Draw(t, "phase")
		w := wrapDegrees(phase)
		diff := math.Mod(phase-w, 360)
		if diff > 180 {
			diff -= 360
		}
		if diff < -180 {
			diff += 360
		}
		assert.InDelta(t, 0, diff, 1e-6)
	})
}

func TestUnwrapKeepsStepsWithin180(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(2, 20).Draw(t, "n")
		phases := make([]float64, n)
		for i := range phases {
			phases[i] = rapid.Float64Range(-720, 720).Draw(t, "phase")
		}
		unwrapPhases(phases)
		for i := 1; i < len(phases); i++ {
			assert.LessOrEqual(t, math.Abs(phases[i]-phases[i-1]), 180.0+1e-9)
		}
	})
}

func TestInterpolateListWithinRangeIsPositiveAmplitude(t *testing.T) {
	l := &List{Entries: []ListEntry{
		{Freq: 1, Amp: 1, Phase: 0},
		{Freq: 2, Amp: 5, Phase: 45},
		{Freq: 3, Amp: 2, Phase: 90},
		{Freq: 4, Amp: 8, Phase: 135},
	}}
	ctx := NewContext("interp_test")

	survFreqs, out, err := evaluateList(ctx, l, []float64{1.5, 2.5, 3.5}, 1.0)
	require.NoError(t, err)
	require.Len(t, survFreqs, 3)
	for _, v := range out {
		assert.Greater(t, realAbs(v), 0.0)
	}
}

func TestInterpolateListDropsOutOfRange(t *testing.T) {
	l := &List{Entries: []ListEntry{
		{Freq: 1, Amp: 1, Phase: 0},
		{Freq: 2, Amp: 2, Phase: 10},
	}}
	ctx := NewContext("interp_test")

	// 0.5 is well outside [1, 2] (half the table's span away), so it is
	// dropped rather than clamped; 1 and 1.5 survive.
	survFreqs, out, err := evaluateList(ctx, l, []float64{0.5, 1, 1.5}, 1.0)
	require.NoError(t, err)
	require.Len(t, survFreqs, 2)
	require.Len(t, out, 2)
	assert.Equal(t, []float64{1, 1.5}, survFreqs)
}

func TestInterpolateListDropsBeyondBothEndpoints(t *testing.T) {
	l := &List{Entries: []ListEntry{
		{Freq: 0.1, Amp: 1, Phase: 0},
		{Freq: 1, Amp: 5, Phase: 10},
		{Freq: 10, Amp: 2, Phase: 20},
	}}
	ctx := NewContext("interp_test")

	survFreqs, _, err := evaluateList(ctx, l, []float64{0.05, 0.1, 1, 10, 20}, 1.0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 1, 10}, survFreqs)
}

func TestInterpolateListAllOutOfRangeFails(t *testing.T) {
	l := &List{Entries: []ListEntry{
		{Freq: 1, Amp: 1, Phase: 0},
		{Freq: 2, Amp: 2, Phase: 10},
	}}
	ctx := NewContext("interp_test")

	_, _, err := evaluateList(ctx, l, []float64{100, 200}, 1.0)
	require.Error(t, err)
	assert.True(t, AsKind(err, KindImproperDataType))
}

func realAbs(v complex128) float64 {
	r := real(v)
	i := imag(v)
	return math.Sqrt(r*r + i*i)
}
