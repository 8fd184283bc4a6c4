package resp

import "fmt"

// parsePolesZeros reads a B053/43 PolesZeros blockette: transfer type
// (F03), sequence (F04), input/output units (F05,F06), a0/a0_freq
// (F07,F08), zero count + rows (F09, F10-13), pole count + rows (F14,
// F15-18). See spec.md §6.
func parsePolesZeros(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	l, err := lx.Expect(blkt, 3)
	if err != nil {
		return Blockette{}, err
	}
	typeCode, err := lx.Field(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	transferType, err := parsePZTransferType(ctx, typeCode)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 4)
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
	a0, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 8)
	if err != nil {
		return Blockette{}, err
	}
	a0Freq, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 9)
	if err != nil {
		return Blockette{}, err
	}
	nzeros, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	zeros, err := readComplexRows(lx, ctx, blkt, 10, nzeros)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 14)
	if err != nil {
		return Blockette{}, err
	}
	npoles, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	poles, err := readComplexRows(lx, ctx, blkt, 15, npoles)
	if err != nil {
		return Blockette{}, err
	}

	return Blockette{
		Kind:            KindPolesZeros,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		PolesZeros: &PolesZeros{
			TransferType: transferType,
			A0:           a0,
			A0Freq:       a0Freq,
			Zeros:        zeros,
			Poles:        poles,
		},
	}, nil
}

func parsePZTransferType(ctx *Context, code string) (PZTransferType, error) {
	switch code {
	case "A":
		return LaplaceAnalog, nil
	case "B":
		return LaplaceDigital, nil
	case "D":
		return IIRTransfer, nil
	default:
		return 0, newErr(ctx, KindUnrecognizedFilterType, fmt.Sprintf("unknown PolesZeros transfer type %q", code), nil)
	}
}

// readComplexRows reads up to n consecutive rows of (real, imag, real_err,
// imag_err) starting at field fld of blkt, discarding the uncertainties
// per spec.md §4.3. It stops early, without consuming the offending line,
// if the stream moves on to a different field before n rows are seen; the
// declared-vs-actual count mismatch is then reported as
// KindArrayBoundsExceeded rather than surfacing whatever the next field
// happens to expect.
func readComplexRows(lx *Lexer, ctx *Context, blkt, fld, n int) ([]complex128, error) {
	out := make([]complex128, 0, n)
	for i := 0; i < n; i++ {
		l, ok, err := lx.TryExpect(blkt, fld)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		re, err := lx.FieldFloat(l, 0)
		if err != nil {
			return nil, err
		}
		im, err := lx.FieldFloat(l, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, complex(re, im))
	}
	if len(out) != n {
		return nil, newErr(ctx, KindArrayBoundsExceeded,
			fmt.Sprintf("B%02dF%02d: expected %d rows, read %d", blkt, fld, n, len(out)), nil)
	}
	return out, nil
}
