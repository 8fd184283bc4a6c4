package resp

// parseDecimation reads a B057/47 Decimation blockette: sequence (F03),
// input sample rate (F04), factor (F05), offset (F06), estimated delay
// (F07), applied correction (F08). See spec.md §6.
func parseDecimation(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
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
	rate, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	sampleInterval := 0.0
	if rate != 0 {
		sampleInterval = 1.0 / rate
	}

	l, err = lx.Expect(blkt, 5)
	if err != nil {
		return Blockette{}, err
	}
	factor, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 6)
	if err != nil {
		return Blockette{}, err
	}
	offset, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 7)
	if err != nil {
		return Blockette{}, err
	}
	estDelay, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 8)
	if err != nil {
		return Blockette{}, err
	}
	appliedCorr, err := lx.FieldFloat(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	return Blockette{
		Kind:       KindDecimation,
		SequenceNo: uint16(seq),
		Decimation: &Decimation{
			SampleInterval:    sampleInterval,
			Factor:            factor,
			Offset:            offset,
			EstimatedDelay:    estDelay,
			AppliedCorrection: appliedCorr,
		},
	}, nil
}
