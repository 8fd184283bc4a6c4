package resp

import "fmt"

// parseCoefficients reads a B054/44 Coefficients blockette: transfer type
// (F03, ignored beyond validation), sequence (F04), input/output units
// (F05,F06), numerator count + rows (F07, F08-09), denominator count +
// rows (F10, F11-12). See spec.md §6.
func parseCoefficients(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	if _, err := lx.Expect(blkt, 3); err != nil {
		return Blockette{}, err
	}

	l, err := lx.Expect(blkt, 4)
	if err != nil {
		return Blockette{}, err
	}
	seq, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	inUnit, err := lx.ExpectField(blkt, 5)
	if err != nil {
		return Blockette{}, err
	}
	outUnit, err := lx.ExpectField(blkt, 6)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 7)
	if err != nil {
		return Blockette{}, err
	}
	nnum, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	numer, err := readRealRows(lx, ctx, blkt, 8, nnum)
	if err != nil {
		return Blockette{}, err
	}

	denom := []float64{}
	if l, ok, err := lx.TryExpect(blkt, 10); err != nil {
		return Blockette{}, err
	} else if ok {
		ndenom, err := lx.FieldInt(l, 0)
		if err != nil {
			return Blockette{}, err
		}
		denom, err = readRealRows(lx, ctx, blkt, 11, ndenom)
		if err != nil {
			return Blockette{}, err
		}
	}

	return Blockette{
		Kind:            KindCoefficients,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		Coefficients: &Coefficients{
			Numerator:   numer,
			Denominator: denom,
		},
	}, nil
}

// readRealRows reads up to n consecutive rows of (value, error) starting at
// field fld of blkt, keeping only the value. It stops early, without
// consuming the offending line, if the stream moves on to a different
// field before n rows are seen; the declared-vs-actual count mismatch is
// then reported as KindArrayBoundsExceeded rather than surfacing whatever
// the next field happens to expect.
func readRealRows(lx *Lexer, ctx *Context, blkt, fld, n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		l, ok, err := lx.TryExpect(blkt, fld)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, err := lx.FieldFloat(l, 0)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if len(out) != n {
		return nil, newErr(ctx, KindArrayBoundsExceeded,
			fmt.Sprintf("B%02dF%02d: expected %d rows, read %d", blkt, fld, n, len(out)), nil)
	}
	return out, nil
}
