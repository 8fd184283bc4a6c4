package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iris-edu/evalresp/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWriteTablesFormat checks the exact %.6E scientific-notation,
// two-space-separated column layout of all four output file kinds, and
// that each is named "<KIND>.<label>" per SPEC_FULL.md §6.2.
func TestWriteTablesFormat(t *testing.T) {
	dir := t.TempDir()
	r := &resp.Response{
		Station: "TEST", Network: "XX", Location: "00", ChannelCode: "BHZ",
		Unit:   resp.UnitVelocity,
		Freqs:  []float64{1},
		Values: []complex128{complex(1, 1)},
	}

	require.NoError(t, writeTables(dir, r))

	label := r.Label()
	assert.Equal(t, "XX.TEST.00.BHZ", label)

	spectra, err := os.ReadFile(filepath.Join(dir, "SPECTRA."+label))
	require.NoError(t, err)
	assert.Equal(t, "1.000000E+00  1.000000E+00  1.000000E+00\n", string(spectra))

	amp, err := os.ReadFile(filepath.Join(dir, "AMP."+label))
	require.NoError(t, err)
	assert.Equal(t, "1.000000E+00  1.414214E+00\n", string(amp))

	phase, err := os.ReadFile(filepath.Join(dir, "PHASE."+label))
	require.NoError(t, err)
	assert.Equal(t, "1.000000E+00  4.500000E+01\n", string(phase))

	fap, err := os.ReadFile(filepath.Join(dir, "FAP."+label))
	require.NoError(t, err)
	assert.Equal(t, "1.000000E+00  1.414214E+00  4.500000E+01\n", string(fap))
}

// TestWriteTablesMultipleFrequencies checks that each table carries one
// line per (freq, value) pair, in the order they appear in the Response.
func TestWriteTablesMultipleFrequencies(t *testing.T) {
	dir := t.TempDir()
	r := &resp.Response{
		Station: "TEST", Network: "XX", Location: "00", ChannelCode: "BHZ",
		Freqs:  []float64{1, 2, 10},
		Values: []complex128{complex(1, 0), complex(0, 2), complex(-1, 0)},
	}

	require.NoError(t, writeTables(dir, r))

	amp, err := os.ReadFile(filepath.Join(dir, "AMP."+r.Label()))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(amp), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1.000000E+00  1.000000E+00", lines[0])
	assert.Equal(t, "2.000000E+00  2.000000E+00", lines[1])
	assert.Equal(t, "1.000000E+01  1.000000E+00", lines[2])
}
