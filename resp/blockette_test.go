package resp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolesZerosWellFormed(t *testing.T) {
	ctx := NewContext("blockette_test")
	text := `B053F03     Transfer function type:                A
B053F04     Stage sequence number:                 1
B053F05     Response in units lookup:              M/S
B053F06     Response out units lookup:              V
B053F07     A0 normalization factor:               1.000000E+00
B053F08     Normalization frequency:               1.000000E+00
B053F09     Number of zeroes:                      1
B053F10     Real zero 0:                           0.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B053F14     Number of poles:                       1
B053F15     Real pole 0:                          -1.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
`
	lx := NewLexer(strings.NewReader(text), ctx)
	b, err := parsePolesZeros(lx, ctx, 53)
	require.NoError(t, err)
	require.NotNil(t, b.PolesZeros)
	assert.Equal(t, LaplaceAnalog, b.PolesZeros.TransferType)
	assert.Equal(t, "M/S", b.InputUnitToken)
	assert.Equal(t, "V", b.OutputUnitToken)
	assert.Len(t, b.PolesZeros.Zeros, 1)
	assert.Len(t, b.PolesZeros.Poles, 1)
}

// TestParsePolesZerosRowCountMismatch exercises spec.md §8's
// declared-count-vs-actual-row-count invariant: the blockette declares 2
// zeroes but the stream only carries 1 before moving on to the pole count
// field, which must be reported as KindArrayBoundsExceeded rather than
// whatever the next field's own parse failure would otherwise look like.
func TestParsePolesZerosRowCountMismatch(t *testing.T) {
	ctx := NewContext("blockette_test")
	text := `B053F03     Transfer function type:                A
B053F04     Stage sequence number:                 1
B053F05     Response in units lookup:              M/S
B053F06     Response out units lookup:              V
B053F07     A0 normalization factor:               1.000000E+00
B053F08     Normalization frequency:               1.000000E+00
B053F09     Number of zeroes:                      2
B053F10     Real zero 0:                           0.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B053F14     Number of poles:                       0
`
	lx := NewLexer(strings.NewReader(text), ctx)
	_, err := parsePolesZeros(lx, ctx, 53)
	require.Error(t, err)
	assert.True(t, AsKind(err, KindArrayBoundsExceeded))
}

func TestParseCoefficientsWellFormed(t *testing.T) {
	ctx := NewContext("blockette_test")
	text := `B054F03     Transfer function type:                D
B054F04     Stage sequence number:                 1
B054F05     Response in units lookup:              COUNTS
B054F06     Response out units lookup:              COUNTS
B054F07     Number of numerators:                  2
B054F08     Numerator 0:                           5.000000E-01  0.000000E+00
B054F08     Numerator 1:                           5.000000E-01  0.000000E+00
`
	lx := NewLexer(strings.NewReader(text), ctx)
	b, err := parseCoefficients(lx, ctx, 54)
	require.NoError(t, err)
	require.NotNil(t, b.Coefficients)
	assert.Equal(t, []float64{0.5, 0.5}, b.Coefficients.Numerator)
	assert.Empty(t, b.Coefficients.Denominator)
}

// TestParseCoefficientsRowCountMismatch mirrors
// TestParsePolesZerosRowCountMismatch for the numerator row list: declared
// count 3, only 1 row present before EOF.
func TestParseCoefficientsRowCountMismatch(t *testing.T) {
	ctx := NewContext("blockette_test")
	text := `B054F03     Transfer function type:                D
B054F04     Stage sequence number:                 1
B054F05     Response in units lookup:              COUNTS
B054F06     Response out units lookup:              COUNTS
B054F07     Number of numerators:                  3
B054F08     Numerator 0:                           5.000000E-01  0.000000E+00
`
	lx := NewLexer(strings.NewReader(text), ctx)
	_, err := parseCoefficients(lx, ctx, 54)
	require.Error(t, err)
	assert.True(t, AsKind(err, KindArrayBoundsExceeded))
}

// TestParseListRowCountMismatch checks the same invariant for the List
// blockette's tabulated-row reader.
func TestParseListRowCountMismatch(t *testing.T) {
	ctx := NewContext("blockette_test")
	text := `B055F03     Stage sequence number:                 1
B055F04     Response in units lookup:              M/S
B055F05     Response out units lookup:              V
B055F06     Number of responses:                   2
B055F07     1.000000E+00  1.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B058F03     Stage sequence number:                 1
`
	lx := NewLexer(strings.NewReader(text), ctx)
	_, err := parseList(lx, ctx, 55)
	require.Error(t, err)
	assert.True(t, AsKind(err, KindArrayBoundsExceeded))
}
