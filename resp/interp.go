package resp

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/interp"
)

// clipRelTolerance is the relative-to-range tolerance within which a
// requested frequency just outside the table's range is snapped to the
// nearest source endpoint instead of being dropped (spec.md §4.7 step 1).
const clipRelTolerance = 1e-6

// defaultTension is used when an EvalRequest leaves Tension at zero.
const defaultTension = 1.0

// evaluateList interpolates a List blockette's tabulated amplitude/phase
// onto freqs, per spec.md §4.7. Requested frequencies outside
// [min(freqs), max(freqs)] are dropped unless within clipRelTolerance of an
// endpoint, in which case they are snapped to it; the returned survFreqs is
// the (possibly shorter) subset that was actually evaluated, in the same
// relative order as freqs. If every frequency is dropped, err is
// ImproperDataType.
func evaluateList(ctx *Context, l *List, freqs []float64, tension float64) (survFreqs []float64, values []complex128, err error) {
	if tension == 0 {
		tension = defaultTension
	}

	n := len(l.Entries)
	srcFreq := make([]float64, n)
	srcAmp := make([]float64, n)
	srcPhase := make([]float64, n)
	for i, e := range l.Entries {
		srcFreq[i] = e.Freq
		srcAmp[i] = e.Amp
		srcPhase[i] = e.Phase
	}

	lo, hi := srcFreq[0], srcFreq[0]
	for _, f := range srcFreq {
		if f < lo {
			lo = f
		}
		if f > hi {
			hi = f
		}
	}
	span := hi - lo

	unwrapPhases(srcPhase)

	ampSpline, err := fitTensionedSpline(srcFreq, srcAmp, tension)
	if err != nil {
		return nil, nil, err
	}
	phaseSpline, err := fitTensionedSpline(srcFreq, srcPhase, tension)
	if err != nil {
		return nil, nil, err
	}

	minAmp := srcAmp[0]
	for _, a := range srcAmp {
		if a < minAmp {
			minAmp = a
		}
	}
	floor := minAmp / 10

	var droppedLow, droppedHigh int
	for _, f := range freqs {
		cf, keep := clipToTable(f, lo, hi, span)
		if !keep {
			if f < lo {
				droppedLow++
			} else {
				droppedHigh++
			}
			continue
		}

		amp := ampSpline.Predict(cf)
		if amp <= 0 {
			ctx.warn("interpolated amplitude non-positive, substituting floor", "freq", cf, "floor", floor)
			amp = floor
		}
		phase := wrapDegrees(phaseSpline.Predict(cf))
		rad := phase * math.Pi / 180

		survFreqs = append(survFreqs, cf)
		values = append(values, cmplx.Rect(amp, rad))
	}

	if droppedLow+droppedHigh > 0 {
		ctx.warn("requested frequencies fell outside the List table's range and were dropped",
			"dropped_low", droppedLow, "dropped_high", droppedHigh)
	}
	if len(survFreqs) == 0 {
		return nil, nil, newErr(ctx, KindImproperDataType, "all requested frequencies fall outside the List blockette's range", nil)
	}
	return survFreqs, values, nil
}

// clipToTable reports whether f falls within [lo, hi], or within
// clipRelTolerance of it, returning the (possibly snapped) frequency to
// evaluate at. keep is false when f must be dropped.
func clipToTable(f, lo, hi, span float64) (cf float64, keep bool) {
	switch {
	case f < lo:
		if span > 0 && (lo-f)/span <= clipRelTolerance {
			return lo, true
		}
		return 0, false
	case f > hi:
		if span > 0 && (f-hi)/span <= clipRelTolerance {
			return hi, true
		}
		return 0, false
	default:
		return f, true
	}
}

// fitTensionedSpline fits gonum's natural cubic interpolator
// (interp.NaturalCubic) to (x, y). gonum's cubic splines do not expose a
// tension knob; tension is accepted for interface compatibility with
// spec.md §4.7's tensioned-spline parameter but only the default (1.0)
// behavior, an ordinary natural cubic fit, is implemented.
func fitTensionedSpline(x, y []float64, tension float64) (*interp.NaturalCubic, error) {
	nc := new(interp.NaturalCubic)
	if err := nc.Fit(x, y); err != nil {
		return nil, err
	}
	_ = tension
	return nc, nil
}

// unwrapPhases rewrites phases in place, applying ±360 degree offsets so
// that successive differences stay within ±180 degrees (spec.md §4.7 step
// 2).
func unwrapPhases(phases []float64) {
	for i := 1; i < len(phases); i++ {
		diff := phases[i] - phases[i-1]
		for diff > 180 {
			phases[i] -= 360
			diff = phases[i] - phases[i-1]
		}
		for diff < -180 {
			phases[i] += 360
			diff = phases[i] - phases[i-1]
		}
	}
}

// wrapDegrees maps an arbitrary phase angle in degrees to (-180, 180].
func wrapDegrees(phase float64) float64 {
	m := math.Mod(phase+180, 360)
	if m <= 0 {
		m += 360
	}
	return m - 180
}
