package resp

// parsePolynomial reads a B062/42 Polynomial blockette: transfer type
// (F03, validated but not retained), sequence (F04), input/output units
// (F05,F06), approximation type (F07), frequency units (F08), frequency
// bounds (F09,F10), approximation bounds (F11,F12), max absolute error
// (F13), coefficient count + rows (F14, F15-16). See spec.md §6.
func parsePolynomial(lx *Lexer, ctx *Context, blkt int) (Blockette, error) {
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
	approxType, err := lx.Field(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 8)
	if err != nil {
		return Blockette{}, err
	}
	freqUnits, err := lx.Field(l, 0)
	if err != nil {
		return Blockette{}, err
	}

	lowerFreq, err := expectFloat(lx, blkt, 9)
	if err != nil {
		return Blockette{}, err
	}
	upperFreq, err := expectFloat(lx, blkt, 10)
	if err != nil {
		return Blockette{}, err
	}
	lowerApprox, err := expectFloat(lx, blkt, 11)
	if err != nil {
		return Blockette{}, err
	}
	upperApprox, err := expectFloat(lx, blkt, 12)
	if err != nil {
		return Blockette{}, err
	}
	maxErr, err := expectFloat(lx, blkt, 13)
	if err != nil {
		return Blockette{}, err
	}

	l, err = lx.Expect(blkt, 14)
	if err != nil {
		return Blockette{}, err
	}
	ncoef, err := lx.FieldInt(l, 0)
	if err != nil {
		return Blockette{}, err
	}
	coeffs := make([]float64, 0, ncoef)
	errs := make([]float64, 0, ncoef)
	for i := 0; i < ncoef; i++ {
		l, err := lx.Expect(blkt, 15)
		if err != nil {
			return Blockette{}, err
		}
		c, err := lx.FieldFloat(l, 0)
		if err != nil {
			return Blockette{}, err
		}
		e, err := lx.FieldFloat(l, 1)
		if err != nil {
			return Blockette{}, err
		}
		coeffs = append(coeffs, c)
		errs = append(errs, e)
	}

	return Blockette{
		Kind:            KindPolynomial,
		SequenceNo:      uint16(seq),
		InputUnitToken:  inUnit,
		OutputUnitToken: outUnit,
		Polynomial: &Polynomial{
			ApproximationType: approxType,
			FrequencyUnits:    freqUnits,
			LowerFreqBound:    lowerFreq,
			UpperFreqBound:    upperFreq,
			LowerApproxBound:  lowerApprox,
			UpperApproxBound:  upperApprox,
			MaxAbsError:       maxErr,
			Coeffs:            coeffs,
			CoeffErrors:       errs,
		},
	}, nil
}

func expectFloat(lx *Lexer, blkt, fld int) (float64, error) {
	l, err := lx.Expect(blkt, fld)
	if err != nil {
		return 0, err
	}
	return lx.FieldFloat(l, 0)
}
