package resp

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// prefixPattern matches a RESP data-line prefix: "B" three digits "F" two
// digits, optionally "-" two more digits for a field range, then
// whitespace, an optional label ending in the ':' separator, and the rest
// of the line as fields.
var prefixPattern = regexp.MustCompile(`^B(\d{3})F(\d{2})(?:-\d{2})?\s*(?:[^:]*(:))?\s*(.*)$`)

// linePrefix is the (blockette_no, field_no) pair decoded from a data
// line, per spec.md §4.1.
type linePrefix struct {
	BlocketteNo int
	FieldNo     int
}

// line is one decoded, non-comment, non-blank line of RESP input.
type line struct {
	Prefix linePrefix
	Fields []string
	Raw    string
}

// Lexer reads RESP text a line at a time, skipping blank and comment
// lines, and exposes the one-line lookahead the assembler needs to detect
// the end of a stage (spec.md §4.1).
type Lexer struct {
	scanner  *bufio.Scanner
	ctx      *Context
	pending  *line // one line of pushback/lookahead
	pendErr  error
	pendSet  bool
	lineNo   int
}

// NewLexer wraps r for line-oriented RESP reading. LF and CRLF line
// endings are accepted because bufio.Scanner's default split function
// (ScanLines) strips a trailing CR; a bare CR is not treated as a line
// ending.
func NewLexer(r io.Reader, ctx *Context) *Lexer {
	return &Lexer{scanner: bufio.NewScanner(r), ctx: ctx}
}

// next reads the next non-blank, non-comment line from the underlying
// stream, or returns io.EOF.
func (lx *Lexer) next() (*line, error) {
	if lx.pendSet {
		l, err := lx.pending, lx.pendErr
		lx.pending, lx.pendErr, lx.pendSet = nil, nil, false
		return l, err
	}

	for lx.scanner.Scan() {
		lx.lineNo++
		raw := lx.scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || trimmed[0] == '#' {
			continue
		}

		m := prefixPattern.FindStringSubmatch(trimmed)
		if m == nil {
			return nil, newErr(lx.ctx, KindUndefinedPrefix,
				fmt.Sprintf("line %d: %q is not a valid Bxx Fyy data line", lx.lineNo, trimmed), nil)
		}

		blkt, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, newErr(lx.ctx, KindUndefinedPrefix, "malformed blockette number", err)
		}
		fld, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, newErr(lx.ctx, KindUndefinedPrefix, "malformed field number", err)
		}
		rest := strings.TrimSpace(m[4])
		if m[3] == "" && rest != "" && !strings.ContainsRune("+-.0123456789", rune(rest[0])) {
			// A labelled line requires a separator; comment-like headers
			// with an empty value (e.g. "B050F03 Station:") still carry
			// one. Unlabelled numeric rows (e.g. List rows) carry none.
			return nil, newErr(lx.ctx, KindUndefinedSeparator,
				fmt.Sprintf("line %d: missing ':' separator", lx.lineNo), nil)
		}

		var fields []string
		if rest != "" {
			fields = strings.Fields(rest)
		}

		return &line{
			Prefix: linePrefix{BlocketteNo: blkt, FieldNo: fld},
			Fields: fields,
			Raw:    trimmed,
		}, nil
	}
	if err := lx.scanner.Err(); err != nil {
		return nil, newErr(lx.ctx, KindUnexpectedEOF, "reading RESP input", err)
	}
	return nil, io.EOF
}

// fill ensures lx.pending holds the next line (or an error/EOF), without
// consuming it.
func (lx *Lexer) fill() {
	if lx.pendSet {
		return
	}
	l, err := lx.next()
	lx.pending, lx.pendErr, lx.pendSet = l, err, true
}

// PeekPrefix returns the (blockette_no, field_no) of the next line without
// consuming it. ok is false at EOF.
func (lx *Lexer) PeekPrefix() (linePrefix, bool, error) {
	lx.fill()
	if lx.pendErr != nil {
		if lx.pendErr == io.EOF {
			return linePrefix{}, false, nil
		}
		return linePrefix{}, false, lx.pendErr
	}
	return lx.pending.Prefix, true, nil
}

// Pushback returns l to the front of the stream, to be re-read by the next
// Next/Expect/TryExpect/Peek call. Only one line of lookahead is
// supported.
func (lx *Lexer) Pushback(l *line) {
	lx.pending, lx.pendErr, lx.pendSet = l, nil, true
}

// Expect consumes the next line, failing with ParseError if its prefix
// does not match (blkt, fld).
func (lx *Lexer) Expect(blkt, fld int) (*line, error) {
	l, err := lx.next()
	if err != nil {
		if err == io.EOF {
			return nil, newErr(lx.ctx, KindUnexpectedEOF,
				fmt.Sprintf("expected B%02dF%02d, got EOF", blkt, fld), nil)
		}
		return nil, err
	}
	if l.Prefix.BlocketteNo != blkt || l.Prefix.FieldNo != fld {
		lx.Pushback(l)
		return nil, newErr(lx.ctx, KindParseError,
			fmt.Sprintf("expected B%02dF%02d, got B%02dF%02d", blkt, fld, l.Prefix.BlocketteNo, l.Prefix.FieldNo), nil)
	}
	return l, nil
}

// TryExpect consumes the next line if its prefix matches (blkt, fld);
// otherwise it pushes the line back and returns ok=false.
func (lx *Lexer) TryExpect(blkt, fld int) (l *line, ok bool, err error) {
	next, err := lx.next()
	if err != nil {
		if err == io.EOF {
			return nil, false, nil
		}
		return nil, false, err
	}
	if next.Prefix.BlocketteNo != blkt || next.Prefix.FieldNo != fld {
		lx.Pushback(next)
		return nil, false, nil
	}
	return next, true, nil
}

// Field returns field index k (0-based) from l, failing with
// ImproperDataType if out of range.
func (lx *Lexer) Field(l *line, k int) (string, error) {
	if k < 0 || k >= len(l.Fields) {
		return "", newErr(lx.ctx, KindImproperDataType,
			fmt.Sprintf("B%02dF%02d: field %d out of range (have %d)", l.Prefix.BlocketteNo, l.Prefix.FieldNo, k, len(l.Fields)), nil)
	}
	return l.Fields[k], nil
}

// FieldInt parses field k as a signed integer.
func (lx *Lexer) FieldInt(l *line, k int) (int, error) {
	s, err := lx.Field(l, k)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, newErr(lx.ctx, KindImproperDataType, fmt.Sprintf("field %d (%q) is not an integer", k, s), err)
	}
	return v, nil
}

// ExpectField consumes the line at (blkt, fld) and returns its first
// field, a common shape for single-value fields like unit tokens.
func (lx *Lexer) ExpectField(blkt, fld int) (string, error) {
	l, err := lx.Expect(blkt, fld)
	if err != nil {
		return "", err
	}
	return lx.Field(l, 0)
}

// FieldFloat parses field k as a float64.
func (lx *Lexer) FieldFloat(l *line, k int) (float64, error) {
	s, err := lx.Field(l, k)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, newErr(lx.ctx, KindImproperDataType, fmt.Sprintf("field %d (%q) is not a float", k, s), err)
	}
	return v, nil
}
