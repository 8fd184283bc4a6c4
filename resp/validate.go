package resp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// firRenormTolerance is the maximum |1 - sum(coeffs)| that passes silently;
// beyond it the coefficients are rescaled and a warning logged (spec.md
// §4.5 step 5).
const firRenormTolerance = 0.02

// Validate normalizes and checks a freshly assembled Channel in place, per
// spec.md §4.5. It classifies each stage's blockettes, merges continuation
// blockettes, reorders them, detects and truncates FIR symmetry, checks DC
// normalization, verifies unit continuity between stages, requires a
// Decimation on every IIR-ish stage, accumulates channel delay/correction
// totals, and enforces List-blockette exclusivity. The Channel's Stages are
// rewritten in place; ch must not be used if a non-nil error is returned.
func Validate(ctx *Context, ch *Channel) error {
	if err := mergeContinuations(ctx, ch); err != nil {
		return err
	}

	var sensitivityStages int
	var listStages, otherFilterStages int

	for i := range ch.Stages {
		st := &ch.Stages[i]
		ctx.Seq = st.SequenceNo

		if err := classifyStage(ctx, st); err != nil {
			return err
		}
		if st.SequenceNo == 0 {
			sensitivityStages++
		}
		switch st.Type {
		case StageList:
			listStages++
		case StagePolesZeros, StageCoefficients, StageFIR, StageGeneric, StagePolynomial:
			otherFilterStages++
		}

		if st.Type == StageFIR {
			if err := normalizeFIR(ctx, st); err != nil {
				return err
			}
		}

		reorderStage(st)

		if err := requireDecimation(ctx, st); err != nil {
			return err
		}
	}

	if sensitivityStages > 1 {
		return newErr(ctx, KindIllegalRespFormat, "more than one overall-sensitivity (sequence_no=0) stage", nil)
	}
	if listStages > 0 && otherFilterStages > 0 {
		return newErr(ctx, KindUnsupportedFilterType,
			"a List stage must be the sole non-gain-only filter stage in the channel", nil)
	}

	if err := checkUnitContinuity(ctx, ch); err != nil {
		return err
	}

	accumulateDelay(ch)
	accumulateSensitivity(ch)

	return nil
}

// accumulateSensitivity reads the overall-sensitivity stage's gain (if any)
// into Channel.ReportedSensitivity/ReportedSensitivityFreq, and multiplies
// every physical stage's gain into Channel.ComputedSensitivity, per the
// Channel fields spec.md §3 defines.
func accumulateSensitivity(ch *Channel) {
	if len(ch.Stages) > 0 && ch.Stages[0].SequenceNo == 0 {
		if g, ok := ch.Stages[0].GainBlockette(); ok {
			ch.ReportedSensitivity = g.Gain
			ch.ReportedSensitivityFreq = g.GainFreq
		}
	}

	sensitivity := 1.0
	for _, st := range ch.PhysicalStages() {
		if g, ok := st.GainBlockette(); ok {
			sensitivity *= g.Gain
		}
	}
	ch.ComputedSensitivity = sensitivity
}

// mergeContinuations concatenates same-kind FIR/List blockettes appearing
// more than once within a stage (spec.md §4.5 step 2). A stage with two
// blockettes of different filter kinds, or two Gain/Decimation/Reference
// blockettes, is left alone here; classifyStage below will reject it if
// that violates the one-filter/one-gain rule.
func mergeContinuations(ctx *Context, ch *Channel) error {
	for i := range ch.Stages {
		st := &ch.Stages[i]
		merged := make([]Blockette, 0, len(st.Blockettes))
		var firHead, listHead *int

		for _, b := range st.Blockettes {
			switch b.Kind {
			case KindFIR:
				if firHead != nil {
					head := &merged[*firHead]
					if head.FIR == nil || b.FIR == nil {
						return newErr(ctx, KindMergeError, "FIR continuation blockette missing payload", nil)
					}
					head.FIR.Coeffs = append(head.FIR.Coeffs, b.FIR.Coeffs...)
					continue
				}
				idx := len(merged)
				firHead = &idx
				merged = append(merged, b)
			case KindList:
				if listHead != nil {
					head := &merged[*listHead]
					if head.List == nil || b.List == nil {
						return newErr(ctx, KindMergeError, "List continuation blockette missing payload", nil)
					}
					head.List.Entries = append(head.List.Entries, b.List.Entries...)
					continue
				}
				idx := len(merged)
				listHead = &idx
				merged = append(merged, b)
			default:
				merged = append(merged, b)
			}
		}
		st.Blockettes = merged
	}
	return nil
}

// classifyStage buckets a stage's blockettes and requires exactly one
// filter and one gain, unless it is a pure gain-only stage (spec.md §4.5
// step 1), and sets InputUnit/OutputUnit/Type from the filter blockette's
// captured unit tokens.
func classifyStage(ctx *Context, st *Stage) error {
	var filterCount, gainCount int
	var filter *Blockette

	for i := range st.Blockettes {
		switch st.Blockettes[i].Kind {
		case KindPolesZeros, KindCoefficients, KindFIR, KindList, KindGeneric, KindPolynomial:
			filterCount++
			filter = &st.Blockettes[i]
		case KindGain:
			gainCount++
		}
	}

	if filterCount > 1 {
		return newErr(ctx, KindIllegalRespFormat, "stage carries more than one filter blockette", nil)
	}
	if gainCount > 1 {
		return newErr(ctx, KindIllegalRespFormat, "stage carries more than one gain blockette", nil)
	}

	if filter == nil {
		if gainCount != 1 {
			return newErr(ctx, KindIllegalRespFormat, "stage has neither a filter nor a gain blockette", nil)
		}
		st.Type = StageGainOnly
		return nil
	}
	if gainCount != 1 {
		return newErr(ctx, KindIllegalRespFormat, "filter stage has no gain blockette", nil)
	}

	switch filter.Kind {
	case KindPolesZeros:
		st.Type = StagePolesZeros
	case KindCoefficients:
		st.Type = StageCoefficients
	case KindFIR:
		st.Type = StageFIR
	case KindList:
		st.Type = StageList
	case KindGeneric:
		st.Type = StageGeneric
		ctx.warn("Generic blockette present; evaluator will emit unity")
	case KindPolynomial:
		st.Type = StagePolynomial
	}

	useDefault := false
	in, err := ParseUnit(ctx, filter.InputUnitToken, useDefault)
	if err != nil {
		return err
	}
	out, err := ParseUnit(ctx, filter.OutputUnitToken, useDefault)
	if err != nil {
		return err
	}
	st.InputUnit = in
	st.OutputUnit = out

	return nil
}

// normalizeFIR applies spec.md §4.5 steps 4–5 to an FIR stage's filter
// blockette: symmetry detection with bit-exact truncation, then DC
// normalization.
func normalizeFIR(ctx *Context, st *Stage) error {
	filt, ok := st.Filter()
	if !ok || filt.FIR == nil {
		return nil
	}
	fir := filt.FIR

	if fir.Symmetry == FIRAsym {
		if sym, half, ok := detectFIRSymmetry(fir.Coeffs); ok {
			fir.Symmetry = sym
			fir.Coeffs = half
		}
	}

	sum := floats.Sum(fir.Coeffs)
	effectiveSum := sum
	switch fir.Symmetry {
	case FIRSymOdd:
		n := len(fir.Coeffs)
		if n > 0 {
			effectiveSum = 2*floats.Sum(fir.Coeffs[:n-1]) + fir.Coeffs[n-1]
		}
	case FIRSymEven:
		effectiveSum = 2 * sum
	}

	if math.Abs(effectiveSum-1) > firRenormTolerance {
		ctx.warn("FIR DC gain deviates from unity, renormalizing", "sum", effectiveSum)
		if effectiveSum != 0 {
			floats.Scale(1/effectiveSum, fir.Coeffs)
		}
	}
	return nil
}

// detectFIRSymmetry tests an asymmetric coefficient sequence for a
// bit-exact palindrome and, if found, returns the symmetry class and the
// truncated (first-half, plus centre for odd N) coefficient slice (spec.md
// §4.5 step 4).
func detectFIRSymmetry(c []float64) (FIRSymmetry, []float64, bool) {
	n := len(c)
	if n < 2 {
		return FIRAsym, nil, false
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		if c[i] != c[j] {
			return FIRAsym, nil, false
		}
	}
	if n%2 == 1 {
		half := make([]float64, n/2+1)
		copy(half, c[:n/2+1])
		return FIRSymOdd, half, true
	}
	half := make([]float64, n/2)
	copy(half, c[:n/2])
	return FIRSymEven, half, true
}

// reorderStage rearranges a stage's blockettes to [Reference?, Filter,
// Decimation?, Gain] (spec.md §4.5 step 3).
func reorderStage(st *Stage) {
	var ref, filt, dec, gain *Blockette
	for i := range st.Blockettes {
		b := &st.Blockettes[i]
		switch b.Kind {
		case KindReference:
			ref = b
		case KindPolesZeros, KindCoefficients, KindFIR, KindList, KindGeneric, KindPolynomial:
			filt = b
		case KindDecimation:
			dec = b
		case KindGain:
			gain = b
		}
	}
	ordered := make([]Blockette, 0, len(st.Blockettes))
	for _, b := range []*Blockette{ref, filt, dec, gain} {
		if b != nil {
			ordered = append(ordered, *b)
		}
	}
	st.Blockettes = ordered
}

// requireDecimation enforces spec.md §4.5 step 7: FIR, Coefficients, and
// PolesZeros(IIR) stages must own a Decimation blockette.
func requireDecimation(ctx *Context, st *Stage) error {
	needsDecimation := false
	switch st.Type {
	case StageFIR, StageCoefficients:
		needsDecimation = true
	case StagePolesZeros:
		if filt, ok := st.Filter(); ok && filt.PolesZeros != nil && filt.PolesZeros.TransferType == IIRTransfer {
			needsDecimation = true
		}
	}
	if !needsDecimation {
		return nil
	}
	if _, ok := st.DecimationBlockette(); !ok {
		return newErr(ctx, KindIllegalRespFormat, "stage requires a Decimation blockette but has none", nil)
	}
	return nil
}

// checkUnitContinuity enforces spec.md §4.5 step 6 across consecutive
// non-gain-only stages.
func checkUnitContinuity(ctx *Context, ch *Channel) error {
	var prev *Stage
	for i := range ch.Stages {
		st := &ch.Stages[i]
		if st.Type == StageGainOnly {
			continue
		}
		if prev != nil && prev.OutputUnit.Unit != UnitDefault && st.InputUnit.Unit != UnitDefault {
			if prev.OutputUnit.Unit != st.InputUnit.Unit {
				ctx.Seq = st.SequenceNo
				return newErr(ctx, KindIllegalRespFormat,
					"unit mismatch: stage output unit does not match next stage's input unit", nil)
			}
		}
		prev = st
	}
	return nil
}

// accumulateDelay implements spec.md §4.5 step 8: FIR group delay and
// decimation delay/correction are summed into channel-level totals, and
// the channel sample interval is set from the last decimated stage.
func accumulateDelay(ch *Channel) {
	for i := range ch.Stages {
		st := &ch.Stages[i]

		if st.Type == StageFIR {
			if filt, ok := st.Filter(); ok && filt.FIR != nil {
				n := len(filt.FIR.Coeffs)
				var ncEffective int
				switch filt.FIR.Symmetry {
				case FIRSymOdd:
					ncEffective = 2*n - 1
				case FIRSymEven:
					ncEffective = 2 * n
				default:
					ncEffective = n
				}
				if dec, ok := st.DecimationBlockette(); ok {
					ch.ComputedDelay += float64(ncEffective-1) / 2 * dec.SampleInterval
				}
			}
		}

		if dec, ok := st.DecimationBlockette(); ok {
			ch.EstimatedDelay += dec.EstimatedDelay
			ch.AppliedCorrection += dec.AppliedCorrection
			ch.SampleInterval = dec.SampleInterval * float64(dec.Factor)
		}
	}
}
