package resp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// EvalRequest carries the parameters needed to evaluate one channel's
// transfer function: the frequencies to sample, the output unit to convert
// into, and the stage-range and option knobs the driver exposes
// (SPEC_FULL.md §6.1).
type EvalRequest struct {
	Freqs []float64

	// OutputUnit is the unit the caller wants Response.Values expressed in.
	// UnitDefault means "same as the channel's first stage input unit," no
	// conversion performed.
	OutputUnit UnitValue

	// StartStage and StopStage bound which stages participate, both
	// inclusive; zero means unbounded on that side.
	StartStage, StopStage int

	UseEstimatedDelay bool

	// PolynomialEvalPoint is the single amplitude a Polynomial stage is
	// evaluated at; unused if the channel has no Polynomial stage.
	PolynomialEvalPoint float64

	// Tension is forwarded to the list interpolator; zero means the
	// interpolator's own default (1.0).
	Tension float64

	UseTotalSensitivity bool
}

// Evaluate computes the composed, unit-converted transfer function of ch at
// req.Freqs, per spec.md §4.6. ch must already have passed Validate. A List
// stage (guaranteed the channel's sole non-gain-only filter by Validate) may
// evaluate at fewer frequencies than requested, per spec.md §4.7 step 1; when
// that happens the shortened frequency set becomes the one every other stage
// and the final Response are evaluated against.
func Evaluate(ctx *Context, ch *Channel, req EvalRequest) (*Response, error) {
	stages := selectStages(ch, req)
	if len(stages) == 0 {
		return nil, newErr(ctx, KindNoStageMatched, "requested stage range excludes every stage", nil)
	}

	freqs := req.Freqs
	var listValues map[int][]complex128
	for i, st := range stages {
		if st.Type != StageList {
			continue
		}
		filt, ok := st.Filter()
		if !ok || filt.List == nil {
			continue
		}
		survFreqs, values, err := evaluateList(ctx, filt.List, freqs, req.Tension)
		if err != nil {
			return nil, err
		}
		freqs = survFreqs
		listValues = map[int][]complex128{i: values}
		break
	}

	n := len(freqs)
	product := make([]complex128, n)
	for i := range product {
		product[i] = complex(1, 0)
	}

	var inputUnit UnitValue
	haveInputUnit := false

	for i, st := range stages {
		ctx.Seq = st.SequenceNo

		var h []complex128
		var err error
		if precomputed, ok := listValues[i]; ok {
			h = precomputed
			h = applyDecimationAndGain(&st, freqs, h, req.UseEstimatedDelay)
		} else {
			h, err = evaluateStage(ctx, &st, freqs, req)
			if err != nil {
				return nil, err
			}
		}
		for k := range product {
			product[k] *= h[k]
		}

		if !haveInputUnit && st.InputUnit.Unit != UnitUndefined {
			inputUnit = st.InputUnit
			haveInputUnit = true
		}
	}

	if req.UseTotalSensitivity && ch.ReportedSensitivity != 0 {
		mag := ch.ReportedSensitivity
		for i, v := range product {
			arg := cmplx.Phase(v)
			product[i] = cmplx.Rect(mag, arg)
		}
	}

	outUnit := req.OutputUnit
	if outUnit.Unit == UnitUndefined {
		outUnit = UnitValue{Unit: UnitDefault}
	}
	convertUnits(ctx, product, freqs, inputUnit.Unit, outUnit.Unit)

	return &Response{
		Station:     ch.Station,
		Network:     ch.Network,
		Location:    ch.Location,
		ChannelCode: ch.ChannelCode,
		Unit:        outUnit.Unit,
		Freqs:       append([]float64(nil), freqs...),
		Values:      product,
	}, nil
}

// selectStages returns the physical stages whose SequenceNo falls within
// [StartStage, StopStage] (0 meaning unbounded on that side).
func selectStages(ch *Channel, req EvalRequest) []Stage {
	var out []Stage
	for _, st := range ch.PhysicalStages() {
		if req.StartStage != 0 && int(st.SequenceNo) < req.StartStage {
			continue
		}
		if req.StopStage != 0 && int(st.SequenceNo) > req.StopStage {
			continue
		}
		out = append(out, st)
	}
	return out
}

// evaluateStage dispatches to the per-filter-kind evaluator and folds in
// the stage's Decimation phase factor and Gain scalar, per spec.md §4.6.
// List stages are never routed through here: Evaluate resolves them first,
// since they may shorten the shared frequency vector.
func evaluateStage(ctx *Context, st *Stage, freqs []float64, req EvalRequest) ([]complex128, error) {
	h := make([]complex128, len(freqs))
	for i := range h {
		h[i] = complex(1, 0)
	}

	filt, hasFilter := st.Filter()
	if hasFilter {
		var err error
		h, err = evaluateFilter(ctx, filt, st, freqs, req)
		if err != nil {
			return nil, err
		}
	}

	return applyDecimationAndGain(st, freqs, h, req.UseEstimatedDelay), nil
}

// applyDecimationAndGain folds a stage's Decimation phase factor and Gain
// scalar into h in place and returns it.
func applyDecimationAndGain(st *Stage, freqs []float64, h []complex128, useEstimatedDelay bool) []complex128 {
	if dec, ok := st.DecimationBlockette(); ok {
		delay := dec.EstimatedDelay
		if !useEstimatedDelay {
			delay -= dec.AppliedCorrection
		}
		for i, f := range freqs {
			omega := 2 * math.Pi * f
			h[i] *= cmplx.Exp(complex(0, -omega*delay))
		}
	}

	if g, ok := st.GainBlockette(); ok {
		cmplxs.Scale(complex(g.Gain, 0), h)
	}

	return h
}

func evaluateFilter(ctx *Context, b *Blockette, st *Stage, freqs []float64, req EvalRequest) ([]complex128, error) {
	switch b.Kind {
	case KindPolesZeros:
		return evalPolesZeros(b.PolesZeros, st, freqs), nil
	case KindCoefficients:
		return evalCoefficients(b.Coefficients, st, freqs), nil
	case KindFIR:
		return evalFIR(b.FIR, st, freqs), nil
	case KindGeneric:
		ctx.warn("evaluating Generic blockette as unity")
		h := make([]complex128, len(freqs))
		for i := range h {
			h[i] = complex(1, 0)
		}
		return h, nil
	case KindPolynomial:
		return evalPolynomial(b.Polynomial, freqs, req.PolynomialEvalPoint), nil
	default:
		h := make([]complex128, len(freqs))
		for i := range h {
			h[i] = complex(1, 0)
		}
		return h, nil
	}
}

// evalPolesZeros implements the LaplaceAnalog/LaplaceDigital and IIR rows
// of spec.md §4.6's table.
func evalPolesZeros(pz *PolesZeros, st *Stage, freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	sampleInterval := st.SampleIntervalHint()

	for i, f := range freqs {
		omega := 2 * math.Pi * f
		var s complex128
		if pz.TransferType == IIRTransfer {
			s = cmplx.Exp(complex(0, omega*sampleInterval))
		} else {
			s = complex(0, omega)
		}

		num := complex(1, 0)
		for _, z := range pz.Zeros {
			num *= s - z
		}
		den := complex(1, 0)
		for _, p := range pz.Poles {
			den *= s - p
		}
		if den == 0 {
			out[i] = complex(0, 0)
			continue
		}
		out[i] = complex(pz.A0, 0) * num / den
	}
	return out
}

// evalCoefficients implements the analog and IIR rows of spec.md §4.6: the
// analog form is chosen when Denominator is empty, the IIR (z^-k) form
// otherwise.
func evalCoefficients(c *Coefficients, st *Stage, freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	sampleInterval := st.SampleIntervalHint()

	for i, f := range freqs {
		omega := 2 * math.Pi * f
		if len(c.Denominator) == 0 {
			s := complex(0, omega)
			out[i] = complex(0, 0)
			for k, b := range c.Numerator {
				out[i] += complex(b, 0) * cmplx.Pow(s, complex(float64(k), 0))
			}
			continue
		}

		z := cmplx.Exp(complex(0, -omega*sampleInterval))
		var num, den complex128
		for k, b := range c.Numerator {
			num += complex(b, 0) * cmplx.Pow(z, complex(float64(k), 0))
		}
		for k, a := range c.Denominator {
			den += complex(a, 0) * cmplx.Pow(z, complex(float64(k), 0))
		}
		if den == 0 {
			out[i] = 0
			continue
		}
		out[i] = num / den
	}
	return out
}

// evalFIR implements the SymOdd/SymEven/Asym rows of spec.md §4.6, using
// the half-length coefficient sequence validate.go's normalizeFIR already
// truncated to.
func evalFIR(f *FIR, st *Stage, freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	T := st.SampleIntervalHint()
	c := f.Coeffs
	n := len(c)

	for i, freq := range freqs {
		omega := 2 * math.Pi * freq
		wT := omega * T

		switch f.Symmetry {
		case FIRSymOdd:
			var sum float64
			for k := 0; k < n-1; k++ {
				sum += c[k] * math.Cos(float64(n-1-k)*wT)
			}
			sum = 2*sum + c[n-1]
			out[i] = complex(sum, 0)
		case FIRSymEven:
			var sum float64
			for k := 0; k < n; k++ {
				sum += c[k] * math.Cos((float64(n-k)-0.5)*wT)
			}
			out[i] = complex(2*sum, 0)
		default:
			var h complex128
			for k := 0; k < n; k++ {
				h += complex(c[k], 0) * cmplx.Exp(complex(0, -float64(k)*wT))
			}
			groupDelay := float64(n-1) / 2
			h *= cmplx.Exp(complex(0, groupDelay*wT))
			out[i] = h
		}
	}
	return out
}

// evalPolynomial evaluates the derivative of the stage's polynomial at
// PolynomialEvalPoint, per spec.md §4.6: a Polynomial stage represents a
// nonlinear sensor sampled at one amplitude, not swept over frequency.
func evalPolynomial(p *Polynomial, freqs []float64, x float64) []complex128 {
	var deriv float64
	dx := x
	for k := 1; k < len(p.Coeffs); k++ {
		deriv += float64(k) * p.Coeffs[k] * math.Pow(dx, float64(k-1))
	}
	out := make([]complex128, len(freqs))
	for i := range out {
		out[i] = complex(deriv, 0)
	}
	return out
}

// convertUnits applies spec.md §4.6's unit conversion table to product in
// place.
func convertUnits(ctx *Context, product []complex128, freqs []float64, in, out Unit) {
	if in == UnitDefault || out == UnitDefault || in == UnitUndefined {
		return
	}

	if in == UnitPressure || in == UnitTesla || in == UnitCentigrade {
		if out != in {
			ctx.warn("output unit not permitted for this input unit, treating as unchanged", "input", in.String(), "output", out.String())
		}
		return
	}

	for i, f := range freqs {
		omega := 2 * math.Pi * f
		jw := complex(0, omega)

		switch {
		case in == UnitDisplacement && out == UnitVelocity:
			product[i] *= jw
		case in == UnitDisplacement && out == UnitAcceleration:
			product[i] *= jw * jw
		case in == UnitVelocity && out == UnitDisplacement:
			if jw == 0 {
				ctx.warn("division by jω at ω=0, emitting zero", "freq", f)
				product[i] = 0
				continue
			}
			product[i] /= jw
		case in == UnitVelocity && out == UnitAcceleration:
			product[i] *= jw
		case in == UnitAcceleration && out == UnitVelocity:
			if jw == 0 {
				ctx.warn("division by jω at ω=0, emitting zero", "freq", f)
				product[i] = 0
				continue
			}
			product[i] /= jw
		}
	}
}
