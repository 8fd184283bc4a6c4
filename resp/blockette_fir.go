package resp

import "fmt"

// parseFIR reads a B061/41 FIR blockette: sequence (F03), response name
// (F04, a free-text label that is read and discarded), symmetry code
// (F05), input/output units (F06,F07), coefficient count + rows (F08,
// F09-10). See spec.md §6.
func parseFIR(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	l, err := lx.Expect(blkt, 3)
	if err != nil {
		return Blockette{}, err
	}
	seq, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	if _, err = lx.Expect(blkt, 4); err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 5)
	if err != nil {
		return Blockette{}, err
	}
	symCode, err := lx.Field(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	sym, err := parseFIRSymmetry(ctx, symCode)
	if err != nil {
		return Blockette{}, err
	}

	inUnit, err := lx.ExpectField(blkt, 6)
	if err != nil {
		return Blockette{}, err
	}
	outUnit, err := lx.ExpectField(blkt, 7)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 8)
	if err != nil {
		return Blockette{}, err
	}
	ncoef, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	coeffs, err := readRealRows(lx, ctx, blkt, 9, ncoef)
	if err != nil {
		return Blockette{}, err
	}

	return Blockette{
		Kind:            KindFIR,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		FIR: &FIR{
			Symmetry: sym,
			Coeffs:   coeffs,
		},
	}, nil
}

func parseFIRSymmetry(ctx *Context, code string) (FIRSymmetry, error) {
	switch code {
	case "A":
		return FIRAsym, nil
	case "B":
		return FIRSymOdd, nil
	case "C":
		return FIRSymEven, nil
	default:
		return 0, newErr(ctx, KindUnrecognizedFilterType, fmt.Sprintf("unknown FIR symmetry code %q", code), nil)
	}
}
