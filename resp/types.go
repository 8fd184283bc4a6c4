// Package resp implements the evalresp response engine: it parses RESP
// (and RESP-shaped XML-converted) instrument-response text, assembles and
// validates the per-channel stage model, and evaluates the resulting
// transfer function at a caller-supplied set of frequencies.
//
// The package does not read files or discover them on disk, does not
// convert StationXML to RESP, and does not format output tables; those are
// the responsibility of a caller such as the driver package or a
// command-line front end.
package resp

import "time"

// Unit is the physical quantity a stage's input or output represents.
type Unit int

// Recognized units. Default means "do not convert; treat output unit as
// equal to input unit," per spec.md §3.
const (
	UnitUndefined Unit = iota
	UnitDisplacement
	UnitVelocity
	UnitAcceleration
	UnitCounts
	UnitVolts
	UnitDefault
	UnitPressure
	UnitTesla
	UnitCentigrade
)

func (u Unit) String() string {
	switch u {
	case UnitDisplacement:
		return "Displacement"
	case UnitVelocity:
		return "Velocity"
	case UnitAcceleration:
		return "Acceleration"
	case UnitCounts:
		return "Counts"
	case UnitVolts:
		return "Volts"
	case UnitDefault:
		return "Default"
	case UnitPressure:
		return "Pressure"
	case UnitTesla:
		return "Tesla"
	case UnitCentigrade:
		return "Centigrade"
	default:
		return "Undefined"
	}
}

// UnitValue pairs a recognized unit with the MKS scale factor parsed from
// its RESP token (e.g. "NM/S" -> UnitVelocity, 1e-9) and the original
// token text for display.
type UnitValue struct {
	Unit  Unit
	Scale float64
	Token string
}

// PZTransferType distinguishes the three flavors of PolesZeros blockette.
type PZTransferType int

const (
	LaplaceAnalog PZTransferType = iota
	LaplaceDigital
	IIRTransfer
)

// FIRSymmetry is the symmetry classification of an FIR coefficient list.
type FIRSymmetry int

const (
	FIRAsym FIRSymmetry = iota
	FIRSymOdd
	FIRSymEven
)

func (s FIRSymmetry) String() string {
	switch s {
	case FIRSymOdd:
		return "SymOdd"
	case FIRSymEven:
		return "SymEven"
	default:
		return "Asym"
	}
}

// BlocketteKind tags the payload carried by a Blockette.
type BlocketteKind int

const (
	KindPolesZeros BlocketteKind = iota
	KindCoefficients
	KindFIR
	KindList
	KindGeneric
	KindDecimation
	KindGain
	KindReference
	KindPolynomial
)

// PolesZeros is the B053/43 (or IIR variant) payload.
type PolesZeros struct {
	TransferType PZTransferType
	A0           float64
	A0Freq       float64
	Zeros        []complex128
	Poles        []complex128
}

// Coefficients is the B054/44 payload: a rational transfer function in
// either the Laplace ((jω)^k) or z-transform (z^-k) domain, chosen by
// whether Denominator is non-empty (see spec.md §4.6).
type Coefficients struct {
	Numerator   []float64
	Denominator []float64
	H0          float64
	HasH0       bool
}

// FIR is the B061/41 payload.
type FIR struct {
	Symmetry FIRSymmetry
	Coeffs   []float64
	H0       float64
	HasH0    bool
}

// ListEntry is one row of a List (B055/45) blockette.
type ListEntry struct {
	Freq  float64
	Amp   float64
	Phase float64
}

// List is the B055/45 payload: a tabulated response requiring
// interpolation onto arbitrary frequencies (spec.md §4.7).
type List struct {
	Entries []ListEntry
}

// Generic is the B056/46 payload. It is preserved for diagnostics only;
// the evaluator emits unity with a warning for it (spec.md §4.6, §9).
type Generic struct {
	CornerFreqs  []float64
	CornerSlopes []float64
}

// Decimation is the B057/47 payload.
type Decimation struct {
	SampleInterval    float64
	Factor            int
	Offset            int
	EstimatedDelay    float64
	AppliedCorrection float64
}

// Gain is the B058/48 payload.
type Gain struct {
	Gain     float64
	GainFreq float64
}

// Reference is the B060 payload. It is metadata only and contributes
// nothing to the response product (spec.md §3).
type Reference struct {
	NumStages    int
	StageNum     int
	NumResponses int
}

// Polynomial is the B062/42 payload.
type Polynomial struct {
	ApproximationType string
	FrequencyUnits    string
	LowerFreqBound    float64
	UpperFreqBound    float64
	LowerApproxBound  float64
	UpperApproxBound  float64
	MaxAbsError       float64
	Coeffs            []float64
	CoeffErrors       []float64
}

// Blockette is a tagged union over the nine payload kinds. Exactly one of
// the pointer fields matching Kind is non-nil.
type Blockette struct {
	Kind       BlocketteKind
	SequenceNo uint16

	// InputUnitToken and OutputUnitToken are the raw "Units:" tokens read
	// from a filter blockette (PolesZeros, Coefficients, FIR, List,
	// Generic, Polynomial). They are empty for Decimation, Gain, and
	// Reference, which carry no unit fields.
	InputUnitToken, OutputUnitToken string

	PolesZeros   *PolesZeros
	Coefficients *Coefficients
	FIR          *FIR
	List         *List
	Generic      *Generic
	Decimation   *Decimation
	Gain         *Gain
	Reference    *Reference
	Polynomial   *Polynomial
}

// StageType identifies which filter kind, if any, a Stage carries. It
// caches the classification the validator performs so later passes (the
// Decimation-required check, the evaluator's dispatch) do not need to
// re-inspect the blockette list (SPEC_FULL.md §5).
type StageType int

const (
	StageUnknown StageType = iota
	StagePolesZeros
	StageCoefficients
	StageFIR
	StageList
	StageGeneric
	StagePolynomial
	StageGainOnly
)

// Stage is a numbered group of blockettes constituting one
// signal-processing step. After Validate, a stage's Blockettes are ordered
// [Reference?, Filter, Decimation?, Gain] except for gain-only and
// overall-sensitivity (SequenceNo == 0) stages.
type Stage struct {
	SequenceNo uint16
	InputUnit  UnitValue
	OutputUnit UnitValue
	Blockettes []Blockette
	Type       StageType
}

// Filter returns the stage's filter blockette, if any, and true if found.
func (s *Stage) Filter() (*Blockette, bool) {
	for i := range s.Blockettes {
		switch s.Blockettes[i].Kind {
		case KindPolesZeros, KindCoefficients, KindFIR, KindList, KindGeneric, KindPolynomial:
			return &s.Blockettes[i], true
		}
	}
	return nil, false
}

// DecimationBlockette returns the stage's Decimation blockette, if any.
func (s *Stage) DecimationBlockette() (*Decimation, bool) {
	for i := range s.Blockettes {
		if s.Blockettes[i].Kind == KindDecimation {
			return s.Blockettes[i].Decimation, true
		}
	}
	return nil, false
}

// SampleIntervalHint returns the stage's own Decimation sample interval if
// it has one, the zero value otherwise. Digital (z-domain) evaluators use
// this as T; analog evaluators ignore it.
func (s *Stage) SampleIntervalHint() float64 {
	if dec, ok := s.DecimationBlockette(); ok {
		return dec.SampleInterval
	}
	return 0
}

// GainBlockette returns the stage's Gain blockette, if any.
func (s *Stage) GainBlockette() (*Gain, bool) {
	for i := range s.Blockettes {
		if s.Blockettes[i].Kind == KindGain {
			return s.Blockettes[i].Gain, true
		}
	}
	return nil, false
}

// Channel is the fully assembled, validated instrument response for one
// station/network/location/channel over one effective-time interval.
type Channel struct {
	Station, Network, Location, ChannelCode string
	StartTime, EndTime                      time.Time

	ReportedSensitivity     float64
	ReportedSensitivityFreq float64
	ComputedSensitivity     float64

	ComputedDelay     float64
	EstimatedDelay    float64
	AppliedCorrection float64
	SampleInterval    float64

	// Stages is indexed 0..N; index 0, if present, is the overall
	// sensitivity stage (SequenceNo == 0). Indices >= 1 are physical
	// stages in strictly increasing SequenceNo.
	Stages []Stage
}

// Label formats the channel's SNCL identifiers as "NET.STA.LOC.CHA",
// matching the driver's log and output-file naming convention
// (SPEC_FULL.md §5).
func (c *Channel) Label() string {
	return c.Network + "." + c.Station + "." + c.Location + "." + c.ChannelCode
}

// PhysicalStages returns the stages after the overall-sensitivity stage,
// i.e. those with SequenceNo >= 1.
func (c *Channel) PhysicalStages() []Stage {
	if len(c.Stages) > 0 && c.Stages[0].SequenceNo == 0 {
		return c.Stages[1:]
	}
	return c.Stages
}

// Response is the evaluated transfer function for one channel.
type Response struct {
	Station, Network, Location, ChannelCode string
	Unit                                    Unit
	Freqs                                   []float64
	Values                                  []complex128
}

// Label formats the response's SNCL identifiers the same way
// Channel.Label does.
func (r *Response) Label() string {
	return r.Network + "." + r.Station + "." + r.Location + "." + r.ChannelCode
}
