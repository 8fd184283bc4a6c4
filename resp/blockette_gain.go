package resp

// parseGain reads a B058/48 Gain blockette: sequence (F03), gain (F04),
// gain frequency (F05). F06 (number of calibrations) and any calibration
// rows that follow are read and discarded per spec.md §6.
func parseGain(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
	l, err := lx.Expect(blkt, 3)
	if err != nil {
		return Blockette{}, err
	}
	seq, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 4)
	if err != nil {
		return Blockette{}, err
	}
	gain, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 5)
	if err != nil {
		return Blockette{}, err
	}
	gainFreq, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	if cl, ok, err := lx.TryExpect(blkt, 6); err != nil {
		return Blockette{}, err
	} else if ok {
		ncal, err := lx.FieldInt(cl, 0)
		if err != nil {
			return Blockette{}, err
		}
		for i := 0; i < ncal; i++ {
			if _, ok, err := lx.TryExpect(blkt, 7); err != nil {
				return Blockette{}, err
			} else if !ok {
				break
			}
		}
	}

	return Blockette{
		Kind:       KindGain,
		SequenceNo: uint16(seq),
		Gain:       &Gain{Gain: gain, GainFreq: gainFreq},
	}, nil
}
