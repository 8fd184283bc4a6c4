package resp

import "fmt"

// parseList reads a B055/45 List blockette: sequence (F03), input/output
// units (F04,F05), row count (F06), and rows (F07-F11: freq, amp,
// amp_err, phase, phase_err). See spec.md §6.
func parseList(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
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

	entries := make([]ListEntry, 0, n)
	for i := 0; i < n; i++ {
		l, ok, err := lx.TryExpect(blkt, 7)
		if err != nil {
			return Blockette{}, err
		}
		if !ok {
			break
		}
		freq, err := lx.FieldFloat(l, 0)
		if err != nil {
			return Blockette{}, err
		}
		amp, err := lx.FieldFloat(l, 1)
		if err != nil {
			return Blockette{}, err
		}
		// Field 2 is the amplitude error; discarded.
		phase, err := lx.FieldFloat(l, 3)
		if err != nil {
			return Blockette{}, err
		}
		// Field 4, if present, is the phase error; discarded.
		entries = append(entries, ListEntry{Freq: freq, Amp: amp, Phase: phase})
	}
	if len(entries) != n {
		return Blockette{}, newErr(ctx, KindArrayBoundsExceeded,
			fmt.Sprintf("B%02dF07: expected %d rows, read %d", blkt, n, len(entries)), nil)
	}

	return Blockette{
		Kind:            KindList,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		List:            &List{Entries: entries},
	}, nil
}
