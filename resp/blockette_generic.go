package resp

import "fmt"

// parseGeneric reads a B056/46 Generic blockette: sequence (F03),
// input/output units (F04,F05), corner count (F06), and corner rows
// (F07-08: frequency, slope). Preserved for diagnostics only; the
// evaluator emits unity with a warning for this kind (spec.md §4.6, §9).
func parseGeneric(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	l, err := lx.Expect(blkt, 3)
	if err != nil {
		return Blockette{}, err
	}
	seq, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	inUnit, err := lx.ExpectField(blkt, 4)
	if err != nil {
		return Blockette{}, err
	}
	outUnit, err := lx.ExpectField(blkt, 5)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 6)
	if err != nil {
		return Blockette{}, err
	}
	n, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	freqs := make([]float64, 0, n)
	slopes := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		l, ok, err := lx.TryExpect(blkt, 7)
		if err != nil {
			return Blockette{}, err
		}
		if !ok {
			break
		}
		f, err := lx.FieldFloat(l, 0)
		if err != nil {
			return Blockette{}, err
		}
		s, err := lx.FieldFloat(l, 1)
		if err != nil {
			return Blockette{}, err
		}
		freqs = append(freqs, f)
		slopes = append(slopes, s)
	}
	if len(freqs) != n {
		return Blockette{}, newErr(ctx, KindArrayBoundsExceeded,
			fmt.Sprintf("B%02dF07: expected %d rows, read %d", blkt, n, len(freqs)), nil)
	}

	return Blockette{
		Kind:            KindGeneric,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		Generic:         &Generic{CornerFreqs: freqs, CornerSlopes: slopes},
	}, nil
}
