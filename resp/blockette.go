package resp

import "fmt"

// canonicalBlockette maps a dictionary blockette number (41, 42, 43-48) to
// its per-channel twin (61, 62, 53-58); channel numbers map to themselves.
// Per spec.md §4.3, dictionary and per-channel variants parse to the same
// payload; this module reads both with the same field layout.
func canonicalBlockette(n int) int {
	switch n {
	case 41:
		return 61
	case 42:
		return 62
	case 43, 44, 45, 46, 47, 48:
		return n + 10
	default:
		return n
	}
}

// parseBlockette reads one filter/decimation/gain/reference blockette
// starting at the given blockette number, dispatching to the per-kind
// parser. It consumes exactly the fields belonging to that blockette.
func parseBlockette(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	switch canonicalBlockette(blkt) {
	case 53:
		return parsePolesZeros(lx, ctx, blkt)
	case 54:
		return parseCoefficients(lx, ctx, blkt)
	case 55:
		return parseList(lx, ctx, blkt)
	case 56:
		return parseGeneric(lx, ctx, blkt)
	case 57:
		return parseDecimation(lx, ctx, blkt)
	case 58:
		return parseGain(lx, ctx, blkt)
	case 60:
		return parseReference(lx, ctx, blkt)
	case 61:
		return parseFIR(lx, ctx, blkt)
	case 62:
		return parsePolynomial(lx, ctx, blkt)
	default:
		return Blockette{}, newErr(ctx, KindUnrecognizedFilterType,
			fmt.Sprintf("blockette B%02d is not a recognized filter/decimation/gain/reference kind", blkt), nil)
	}
}

// isKnownBlockette reports whether n is a blockette number the parser
// understands (channel header, dictionary, or per-channel filter kind).
func isKnownBlockette(n int) bool {
	switch n {
	case 50, 52, 60, 61, 62, 41:
		return true
	}
	switch canonicalBlockette(n) {
	case 53, 54, 55, 56, 57, 58, 60, 61, 62:
		return true
	}
	return false
}
