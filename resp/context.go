package resp

import (
	"log/slog"
)

// Context replaces the original evalresp's global mutable state
// (GblChanPtr, curr_file, curr_seq_no, myLabel — see spec.md §9) with a
// small value threaded explicitly through the parser and evaluator. It
// carries nothing that outlives a single parse-and-evaluate call.
type Context struct {
	// File is the name of the RESP input currently being read, used only
	// for error and log context.
	File string

	// SNCL is the "NET.STA.LOC.CHA" label of the channel currently being
	// assembled or evaluated, used only for error and log context.
	SNCL string

	// Seq is the sequence_no of the stage currently being parsed.
	Seq uint16

	// Log receives warnings for recoverable, non-fatal conditions: FIR
	// renormalization, clipped interpolation frequencies, Generic
	// blockette substitution, divide-by-zero at omega=0, and similar.
	// A nil Log discards warnings.
	Log *slog.Logger
}

// warn emits a structured warning if c.Log is set, attaching file/sncl/seq
// context automatically.
func (c *Context) warn(msg string, args ...any) {
	if c == nil || c.Log == nil {
		return
	}
	full := make([]any, 0, len(args)+6)
	full = append(full, "file", c.File, "sncl", c.SNCL, "seq", c.Seq)
	full = append(full, args...)
	c.Log.Warn(msg, full...)
}

// NewContext returns a Context with a no-op logger (warnings discarded).
func NewContext(file string) *Context {
	return &Context{File: file, Log: slog.New(slog.NewTextHandler(discardWriter{}, nil))}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
