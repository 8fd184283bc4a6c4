package driver

import (
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/iris-edu/evalresp/resp"
)

// Request is a fully parsed, validated request to evaluate one or more
// channels' instrument responses (SPEC_FULL.md §6.1).
type Request struct {
	// Patterns are "NET.STA.LOC.CHA" glob patterns; a channel must match at
	// least one to be evaluated. An empty list matches every channel.
	Patterns []string

	// Files are the RESP input paths to scan for matching channels.
	Files []string

	// EffectiveTime keeps only the channel epochs whose interval contains
	// it; the zero value applies no time filter, so every epoch of a
	// matching channel is evaluated.
	EffectiveTime time.Time

	Freqs      []float64
	OutputUnit resp.Unit

	StartStage, StopStage int
	UseEstimatedDelay     bool
	UseTotalSensitivity   bool
	PolynomialEvalPoint   float64
	Tension               float64

	// Jobs bounds the worker-pool size; zero means runtime.NumCPU().
	Jobs uint

	// Log receives parse/validate/evaluate warnings. A nil Log discards
	// them.
	Log *slog.Logger
}

// Result is one evaluated channel, or the error that prevented it from
// being evaluated.
type Result struct {
	File     string
	Response *resp.Response
	Err      error
}

// Run evaluates req against its Files and returns one Result per matched,
// successfully evaluated channel, plus a Result carrying an error for each
// channel that fails to parse or validate (whether or not it would have
// matched), for each matched channel that fails to evaluate, and for any
// file-level failure. Files are scanned concurrently across a worker pool
// sized by req.Jobs, mirroring the (filenames chan, results chan,
// sync.WaitGroup) shape used by entrope-gnss's cmd/countobs.
func Run(req *Request) []Result {
	jobs := req.Jobs
	if jobs == 0 {
		jobs = uint(runtime.NumCPU())
	}

	files := make(chan string, len(req.Files))
	results := make(chan Result, 8+jobs)

	var workers sync.WaitGroup
	for i := uint(0); i < jobs; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for file := range files {
				scanFile(req, file, results)
			}
		}()
	}

	for _, f := range req.Files {
		files <- f
	}
	close(files)

	go func() {
		workers.Wait()
		close(results)
	}()

	var out []Result
	for r := range results {
		out = append(out, r)
	}
	return out
}

// scanFile opens one RESP file, parses and validates every channel in it,
// filters by req.Patterns/EffectiveTime, evaluates the survivors, and sends
// a Result for each (including a single error Result if the file itself
// cannot be opened or a non-recoverable parse error aborts it).
func scanFile(req *Request, filename string, results chan<- Result) {
	f, err := os.Open(filename)
	if err != nil {
		results <- Result{File: filename, Err: fmt.Errorf("opening %s: %w", filename, err)}
		return
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			results <- Result{File: filename, Err: fmt.Errorf("opening %s: %w", filename, err)}
			return
		}
		defer gz.Close()
		r = gz
	}

	ctx := resp.NewContext(filename)
	if req.Log != nil {
		ctx.Log = req.Log
	}
	lx := resp.NewLexer(r, ctx)

	evalReq := resp.EvalRequest{
		Freqs:               req.Freqs,
		OutputUnit:          resp.UnitValue{Unit: req.OutputUnit},
		StartStage:          req.StartStage,
		StopStage:           req.StopStage,
		UseEstimatedDelay:   req.UseEstimatedDelay,
		UseTotalSensitivity: req.UseTotalSensitivity,
		PolynomialEvalPoint: req.PolynomialEvalPoint,
		Tension:             req.Tension,
	}

	err = resp.ParseChannels(lx, ctx, func(ch *resp.Channel, perr error) {
		if perr != nil {
			results <- Result{File: filename, Err: perr}
			return
		}
		if !matchesRequest(req, ch) {
			return
		}
		r, err := resp.Evaluate(ctx, ch, evalReq)
		if err != nil {
			results <- Result{File: filename, Err: err}
			return
		}
		results <- Result{File: filename, Response: r}
	})
	if err != nil {
		results <- Result{File: filename, Err: fmt.Errorf("%s: %w", filename, err)}
	}
}

// matchesRequest reports whether ch's SNCL label matches at least one of
// req.Patterns and whether its active interval contains EffectiveTime.
func matchesRequest(req *Request, ch *resp.Channel) bool {
	if !req.EffectiveTime.IsZero() {
		if req.EffectiveTime.Before(ch.StartTime) {
			return false
		}
		if !ch.EndTime.IsZero() && req.EffectiveTime.After(ch.EndTime) {
			return false
		}
	}

	if len(req.Patterns) == 0 {
		return true
	}
	label := ch.Network + "." + ch.Station + "." + ch.Location + "." + ch.ChannelCode
	for _, p := range req.Patterns {
		if snclMatch(p, label) {
			return true
		}
	}
	return false
}

// snclMatch matches label against an evalresp-style glob pattern using '*'
// (any run of characters) and '?' (exactly one character), reusing
// path.Match's shell-glob semantics since both alphabets coincide for SNCL
// strings (no '/' ever appears in either side).
func snclMatch(pattern, label string) bool {
	ok, err := path.Match(pattern, label)
	if err != nil {
		return false
	}
	return ok
}
