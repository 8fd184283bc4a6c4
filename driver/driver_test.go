package driver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iris-edu/evalresp/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSNCLMatch(t *testing.T) {
	cases := []struct {
		pattern, label string
		want           bool
	}{
		{"XX.TEST.00.BHZ", "XX.TEST.00.BHZ", true},
		{"XX.TEST.00.BHZ", "XX.TEST.00.BHN", false},
		{"XX.*.00.BH?", "XX.TEST.00.BHZ", true},
		{"XX.*.00.BH?", "XX.TEST.00.BHZZ", false},
		{"*.TEST.*.*", "XX.TEST.00.BHZ", true},
		{"YY.*.*.*", "XX.TEST.00.BHZ", false},
		{"[", "XX.TEST.00.BHZ", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, snclMatch(c.pattern, c.label), "pattern %q vs label %q", c.pattern, c.label)
	}
}

func testChannel() *resp.Channel {
	return &resp.Channel{
		Network: "XX", Station: "TEST", Location: "00", ChannelCode: "BHZ",
		StartTime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMatchesRequestNoPatternsMatchesEverything(t *testing.T) {
	req := &Request{}
	assert.True(t, matchesRequest(req, testChannel()))
}

func TestMatchesRequestPatternFiltering(t *testing.T) {
	req := &Request{Patterns: []string{"YY.*.*.*"}}
	assert.False(t, matchesRequest(req, testChannel()))

	req = &Request{Patterns: []string{"YY.*.*.*", "XX.*.*.BHZ"}}
	assert.True(t, matchesRequest(req, testChannel()))
}

func TestMatchesRequestEffectiveTimeOutsideEpoch(t *testing.T) {
	req := &Request{EffectiveTime: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, matchesRequest(req, testChannel()))

	req = &Request{EffectiveTime: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.False(t, matchesRequest(req, testChannel()))

	req = &Request{EffectiveTime: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, matchesRequest(req, testChannel()))
}

func TestMatchesRequestOpenEndedEpoch(t *testing.T) {
	ch := testChannel()
	ch.EndTime = time.Time{}
	req := &Request{EffectiveTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.True(t, matchesRequest(req, ch))
}

const driverTestResp = `
B050F03     Station:     TEST
B050F16     Network:     XX
B052F03     Location:    00
B052F04     Channel:     BHZ
B052F22     Start date:  2020,001,00:00:00
B052F23     End date:    No Ending Time
B058F03     Stage sequence number:                 0
B058F04     Gain:                                  8.000000E+02
B058F05     Gain frequency:                        1.000000E+00
B053F03     Transfer function type:                A
B053F04     Stage sequence number:                 1
B053F05     Response in units lookup:              M/S
B053F06     Response out units lookup:              V
B053F07     A0 normalization factor:               1.000000E+00
B053F08     Normalization frequency:               1.000000E+00
B053F09     Number of zeroes:                      1
B053F10     Real zero 0:                           0.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B053F14     Number of poles:                       1
B053F15     Real pole 0:                          -1.000000E+00  0.000000E+00  0.000000E+00  0.000000E+00
B058F03     Stage sequence number:                 1
B058F04     Gain:                                  1.000000E+00
B058F05     Gain frequency:                        1.000000E+00
`

// TestRunEvaluatesMatchingChannel exercises the full worker-pool path: a
// RESP file on disk, scanned concurrently, filtered by pattern, and
// evaluated, producing one successful Result.
func TestRunEvaluatesMatchingChannel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "RESP.XX.TEST.00.BHZ")
	require.NoError(t, os.WriteFile(path, []byte(driverTestResp), 0o644))

	req := &Request{
		Files:    []string{path},
		Patterns: []string{"XX.TEST.00.BHZ"},
		Freqs:    []float64{1},
		Jobs:     2,
	}
	results := Run(req)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Response)
	assert.Equal(t, "XX.TEST.00.BHZ", results[0].Response.Label())
}

// TestRunFiltersOutNonMatchingPattern confirms a file whose only channel
// fails every pattern produces no Results at all.
func TestRunFiltersOutNonMatchingPattern(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "RESP.XX.TEST.00.BHZ")
	require.NoError(t, os.WriteFile(path, []byte(driverTestResp), 0o644))

	req := &Request{
		Files:    []string{path},
		Patterns: []string{"YY.*.*.*"},
		Freqs:    []float64{1},
	}
	results := Run(req)
	assert.Empty(t, results)
}

// TestRunReportsUnopenableFile confirms a missing input file surfaces as a
// single error Result rather than being silently dropped.
func TestRunReportsUnopenableFile(t *testing.T) {
	req := &Request{Files: []string{filepath.Join(t.TempDir(), "does-not-exist.resp")}}
	results := Run(req)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}
